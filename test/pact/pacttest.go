//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pet-adoption-api"
	ConsumerName = "adoption-portal"

	StateAvailablePets = "pets are available for adoption"
	StatePetExists     = "pet 0123456789abcdef0123456789abcdef exists"
	StatePetMissing    = "no pet with id ffffffffffffffffffffffffffffffff"
	StateNoAccount     = "no account is registered for ghost@example.com"
)

const (
	ExistingPetID = "0123456789abcdef0123456789abcdef"
	MissingPetID  = "ffffffffffffffffffffffffffffffff"

	UnknownEmail = "ghost@example.com"
	AnyPassword  = "secret1"
)

const (
	examplePetName    = "Firulais"
	examplePetSpecies = "dog"
	examplePetAge     = 3
	exampleImageURL   = "https://example.pact/pets/firulais.png"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePet describes the pet both sides of the contract agree on.
type ExamplePet struct {
	ID       string
	Name     string
	Species  string
	Age      int
	ImageURL string
}

// SeededPet returns the pet the provider seeds for StatePetExists and StateAvailablePets.
func SeededPet() ExamplePet {
	return ExamplePet{
		ID:       ExistingPetID,
		Name:     examplePetName,
		Species:  examplePetSpecies,
		Age:      examplePetAge,
		ImageURL: exampleImageURL,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
