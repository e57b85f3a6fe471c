package auth

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword("hunter2!", &digest) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("hunter2", &digest) {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPasswordWithoutStoredHash(t *testing.T) {
	// OAuth and provisioned accounts carry no hash; no password may match.
	if CheckPassword("anything", nil) {
		t.Fatal("nil digest accepted a password")
	}
	empty := ""
	if CheckPassword("anything", &empty) {
		t.Fatal("empty digest accepted a password")
	}
}
