package crosslight

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("Config", "yellow_seconds must be at least 1")

	if !IsConfigurationError(err) {
		t.Error("Expected IsConfigurationError to be true")
	}
	if IsDriverError(err) {
		t.Error("Expected IsDriverError to be false")
	}

	expected := "configuration error in Config: yellow_seconds must be at least 1"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestDriverError(t *testing.T) {
	cause := fmt.Errorf("gpio not available")
	err := NewDriverError("gpiodriver", "host init failed", cause)

	if !IsDriverError(err) {
		t.Error("Expected IsDriverError to be true")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected wrapped cause to be reachable via errors.Is")
	}

	expected := "driver error in gpiodriver: host init failed: gpio not available"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestDriverError_WithoutCause(t *testing.T) {
	err := NewDriverError("memdriver", "not wired", nil)

	expected := "driver error in memdriver: not wired"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}
