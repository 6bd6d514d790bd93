package options

import "testing"

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateRejectsUnknownMembers(t *testing.T) {
	cases := []struct {
		name string
		o    Options
	}{
		{"bad tone", Options{Tone: "sarcastic", Structure: "structured", Focus: "full"}},
		{"bad structure", Options{Tone: "formal", Structure: "prose", Focus: "full"}},
		{"bad focus", Options{Tone: "formal", Structure: "structured", Focus: "everything"}},
		{"empty", Options{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.o.Validate(); err == nil {
				t.Fatalf("expected validation error for %+v", tc.o)
			}
		})
	}
}

func TestValidateAcceptsAllMembers(t *testing.T) {
	for _, tone := range Tones {
		for _, structure := range Structures {
			for _, focus := range Focuses {
				o := Options{Tone: tone, Structure: structure, Focus: focus}
				if err := o.Validate(); err != nil {
					t.Fatalf("%+v should validate: %v", o, err)
				}
			}
		}
	}
}

func TestCycleVisitsEveryMemberAndWraps(t *testing.T) {
	o := Defaults()
	seen := map[string]bool{o.Tone: true}
	for i := 1; i < len(Tones); i++ {
		o.CycleTone()
		seen[o.Tone] = true
	}
	if len(seen) != len(Tones) {
		t.Fatalf("cycling tone visited %d of %d members", len(seen), len(Tones))
	}
	o.CycleTone()
	if o.Tone != Defaults().Tone {
		t.Fatalf("cycling past the end should wrap to %q, got %q", Defaults().Tone, o.Tone)
	}
}

func TestCycleRecoversFromUnknownValue(t *testing.T) {
	o := Options{Tone: "bogus"}
	o.CycleTone()
	if o.Tone != Tones[0] {
		t.Fatalf("unknown value should snap to %q, got %q", Tones[0], o.Tone)
	}
}
