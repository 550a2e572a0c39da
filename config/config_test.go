package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestSubstepDt(t *testing.T) {
	p := PhysicsConfig{TickRate: 64, Substeps: 4}
	if got, want := p.SubstepDt(), 1.0/256; got != want {
		t.Fatalf("SubstepDt() = %v, want %v", got, want)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	defer Apply(Defaults())

	path := filepath.Join(t.TempDir(), "netcharacon.yaml")
	yaml := []byte(`
physics:
  substeps: 6
movement:
  jump_impulse: 7.5
character:
  spawn: [1, 3, -2]
server:
  port: 6000
client:
  join_timeout: 5s
`)
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if Physics.Substeps != 6 {
		t.Errorf("Physics.Substeps = %d, want 6", Physics.Substeps)
	}
	if Physics.TickRate != 64 {
		t.Errorf("Physics.TickRate = %d, want default 64", Physics.TickRate)
	}
	if Movement.JumpImpulse != 7.5 {
		t.Errorf("Movement.JumpImpulse = %v, want 7.5", Movement.JumpImpulse)
	}
	if Character.Spawn.Y() != 3 || Character.Spawn.Z() != -2 {
		t.Errorf("Character.Spawn = %v, want [1 3 -2]", Character.Spawn)
	}
	if Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want 6000", Server.Port)
	}
	if Client.JoinTimeout != 5*time.Second {
		t.Errorf("Client.JoinTimeout = %v, want 5s", Client.JoinTimeout)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	defer Apply(Defaults())

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("movement:\n  damping_factor: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Load(path); err == nil {
		t.Fatal("expected validation error for damping_factor 1.5")
	}
	if Movement.DampingFactor != 0.98 {
		t.Errorf("invalid file must not be applied, DampingFactor = %v", Movement.DampingFactor)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateNetworkFasterThanPhysics(t *testing.T) {
	c := Defaults()
	c.Network.TickRate = c.Physics.TickRate + 1
	if err := c.Validate(); err == nil {
		t.Fatal("network tick faster than physics tick must be rejected")
	}
}

func TestValidateNegativeClientTimeout(t *testing.T) {
	c := Defaults()
	c.Network.ClientTimeout = -time.Second
	if err := c.Validate(); err == nil {
		t.Fatal("negative client timeout must be rejected")
	}
}
