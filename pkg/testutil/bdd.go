package testutil

import "testing"

// Given, When and Then name nested subtests as scenario steps so a failing
// step reads as a sentence in the test output.
func Given(t *testing.T, context string, steps func(t *testing.T)) bool {
	t.Helper()
	return t.Run("Given "+context, steps)
}

func When(t *testing.T, action string, steps func(t *testing.T)) bool {
	t.Helper()
	return t.Run("When "+action, steps)
}

func Then(t *testing.T, outcome string, check func(t *testing.T)) bool {
	t.Helper()
	return t.Run("Then "+outcome, check)
}
