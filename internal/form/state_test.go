package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// typeInto replays a keystroke-by-keystroke edit, the way a UI delivers it.
func typeInto(t *testing.T, sc *Schema, st State, field, text string) State {
	t.Helper()
	cur := st.Values[field]
	for _, r := range text {
		cur += string(r)
		var err error
		st, err = sc.Change(st, field, cur)
		if err != nil {
			t.Fatalf("Change(%s): %v", field, err)
		}
	}
	return st
}

func TestNewStateIsEmpty(t *testing.T) {
	st := Contact().New()
	want := Values{"firstName": "", "lastName": "", "email": "", "message": ""}
	if diff := cmp.Diff(want, st.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if st.ErrorCount() != 0 || st.Phase() != Editing {
		t.Fatalf("fresh state: errors=%d phase=%v", st.ErrorCount(), st.Phase())
	}
}

func TestSubmitEmptyFormYieldsThreeErrors(t *testing.T) {
	sc := Contact()
	st := sc.Submit(sc.New())

	want := map[string]string{
		"firstName": "firstName is a required field",
		"lastName":  "lastName is a required field",
		"email":     "email is a required field",
	}
	if diff := cmp.Diff(want, st.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if st.Submitted != nil {
		t.Fatal("Submitted set despite errors")
	}
}

func TestShortFirstNameYieldsOneError(t *testing.T) {
	sc := Contact()
	st := typeInto(t, sc, sc.New(), "firstName", "syd")

	want := map[string]string{"firstName": "firstName must have at least 5 characters"}
	if diff := cmp.Diff(want, st.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNamesWithoutEmailYieldsOneError(t *testing.T) {
	sc := Contact()
	st := typeInto(t, sc, sc.New(), "firstName", "Sydney")
	st = typeInto(t, sc, st, "lastName", "Gomez")
	st = sc.Submit(st)

	want := map[string]string{"email": "email is a required field"}
	if diff := cmp.Diff(want, st.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidEmailWhileTyping(t *testing.T) {
	sc := Contact()
	st := typeInto(t, sc, sc.New(), "email", "ffff")
	if got := st.Errors["email"]; got != "email must be a valid email address" {
		t.Fatalf("email error = %q", got)
	}
}

func TestChangeValidatesOnlyThatField(t *testing.T) {
	sc := Contact()
	st := sc.Submit(sc.New()) // three errors
	st = typeInto(t, sc, st, "firstName", "Sydney")

	if _, ok := st.Errors["firstName"]; ok {
		t.Fatal("firstName error survived a valid edit")
	}
	if st.ErrorCount() != 2 {
		t.Fatalf("ErrorCount = %d, want 2", st.ErrorCount())
	}
}

func TestValidSubmitSnapshotsValues(t *testing.T) {
	sc := Contact()
	st := typeInto(t, sc, sc.New(), "firstName", "SydneyR")
	st = typeInto(t, sc, st, "lastName", "Gomez")
	st = typeInto(t, sc, st, "email", "sydneycamille0896@gmail.com")
	st = sc.Submit(st)

	want := Values{
		"firstName": "SydneyR",
		"lastName":  "Gomez",
		"email":     "sydneycamille0896@gmail.com",
		"message":   "",
	}
	if diff := cmp.Diff(want, st.Submitted); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if st.ErrorCount() != 0 || st.Phase() != Submitted {
		t.Fatalf("errors=%d phase=%v", st.ErrorCount(), st.Phase())
	}
}

func TestFailedSubmitKeepsPreviousSnapshot(t *testing.T) {
	sc := Contact()
	st := sc.Restore(Values{"firstName": "SydneyR", "lastName": "Gomez", "email": "s@example.com"}, nil)
	st = sc.Submit(st)
	first := st.Submitted

	// Blur keeps the snapshot; a failing submit must not touch it either.
	st, _ = sc.Blur(st, "email")
	st.Values["email"] = "broken" // bypasses Change on purpose
	st = sc.Submit(st)

	if diff := cmp.Diff(first, st.Submitted); diff != "" {
		t.Fatalf("snapshot changed (-want +got):\n%s", diff)
	}
	if st.ErrorCount() != 1 {
		t.Fatalf("ErrorCount = %d, want 1", st.ErrorCount())
	}
}

func TestChangeAfterSubmitReturnsToEditing(t *testing.T) {
	sc := Contact()
	st := sc.Submit(sc.Restore(Values{"firstName": "SydneyR", "lastName": "Gomez", "email": "s@example.com"}, nil))
	if st.Phase() != Submitted {
		t.Fatalf("phase = %v, want submitted", st.Phase())
	}

	st, _ = sc.Change(st, "lastName", "")
	if st.Phase() != Editing || st.Submitted != nil {
		t.Fatalf("phase = %v after edit, want editing", st.Phase())
	}
	if got := st.Errors["lastName"]; got != "lastName is a required field" {
		t.Fatalf("lastName error = %q", got)
	}
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	sc := Contact()
	before := sc.New()
	_, _ = sc.Change(before, "firstName", "syd")
	_ = sc.Submit(before)

	if before.Values["firstName"] != "" || len(before.Errors) != 0 || len(before.Touched) != 0 {
		t.Fatalf("input state mutated: %+v", before)
	}
}

func TestBlurValidatesUntouchedField(t *testing.T) {
	sc := Contact()
	st, err := sc.Blur(sc.New(), "lastName")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"lastName": "lastName is a required field"}, st.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageNeverErrors(t *testing.T) {
	sc := Contact()
	st := typeInto(t, sc, sc.New(), "message", "x")
	st, _ = sc.Change(st, "message", "")
	st = sc.Submit(st)
	if _, ok := st.Errors["message"]; ok {
		t.Fatal("message produced an error")
	}
}

func TestRestoreRederivesErrors(t *testing.T) {
	sc := Contact()
	st := sc.Restore(Values{"firstName": "syd", "email": "ffff", "bogus": "x"}, []string{"firstName", "bogus"})

	want := map[string]string{"firstName": "firstName must have at least 5 characters"}
	if diff := cmp.Diff(want, st.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if _, ok := st.Values["bogus"]; ok {
		t.Fatal("unknown field leaked into values")
	}
	if diff := cmp.Diff([]string{"firstName"}, sc.TouchedList(st)); diff != "" {
		t.Fatalf("touched mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorListFollowsFieldOrder(t *testing.T) {
	sc := Contact()
	st := sc.Submit(sc.New())
	want := []ErrorField{
		{Name: "firstName", Message: "firstName is a required field"},
		{Name: "lastName", Message: "lastName is a required field"},
		{Name: "email", Message: "email is a required field"},
	}
	if diff := cmp.Diff(want, sc.ErrorList(st)); diff != "" {
		t.Fatalf("error list mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreSubmitted(t *testing.T) {
	sc := Contact()
	snap := Values{"firstName": "SydneyR", "lastName": "Gomez", "email": "s@example.com"}
	base := sc.Restore(snap, []string{"email"})

	st := sc.RestoreSubmitted(base, snap)
	if st.Phase() != Submitted || st.Submitted["message"] != "" || len(st.Submitted) != 4 {
		t.Fatalf("state = %+v", st)
	}
	if base.Phase() != Editing {
		t.Fatal("RestoreSubmitted mutated its input")
	}

	st, err := sc.Blur(st, "email")
	if err != nil {
		t.Fatal(err)
	}
	if st.Phase() != Submitted {
		t.Fatal("blur cleared the snapshot")
	}

	if got := sc.RestoreSubmitted(base, nil); got.Phase() != Editing {
		t.Fatal("empty snapshot restored")
	}
	bad := snap.Clone()
	bad["firstName"] = "syd"
	if got := sc.RestoreSubmitted(base, bad); got.Phase() != Editing {
		t.Fatal("snapshot failing validation restored")
	}
}
