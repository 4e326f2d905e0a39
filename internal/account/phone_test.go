package account

import "testing"

func TestPhoneDigits(t *testing.T) {
	tests := []struct {
		name        string
		phoneNumber string
		title       string
		want        string
	}{
		{
			name:        "formatted phone number",
			phoneNumber: "+7 (999) 123-45-67",
			want:        "79991234567",
		},
		{
			name:        "digits preserved in order",
			phoneNumber: "a1b2c3",
			want:        "123",
		},
		{
			name:        "phone number preferred over title",
			phoneNumber: "+7 999 000 11 22",
			title:       "+7 999 999 99 99",
			want:        "79990001122",
		},
		{
			name:  "title fallback",
			title: "+7 9991234567",
			want:  "79991234567",
		},
		{
			name:        "digitless phone number falls back to title",
			phoneNumber: "---",
			title:       "Flat 42 (+7 999 123 45 67)",
			want:        "4279991234567",
		},
		{
			name:        "whitespace phone number falls back to title",
			phoneNumber: "   ",
			title:       "555",
			want:        "555",
		},
		{
			name:        "no digits anywhere",
			phoneNumber: "",
			title:       "main entrance",
			want:        "",
		},
		{
			name: "both empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhoneDigits(tt.phoneNumber, tt.title); got != tt.want {
				t.Errorf("PhoneDigits(%q, %q) = %q, want %q", tt.phoneNumber, tt.title, got, tt.want)
			}
		})
	}
}

func TestObjectID(t *testing.T) {
	withPhone := &Account{EntryID: "entry-1", PhoneDigits: "79991234567"}
	if got := withPhone.ObjectID(); got != "79991234567" {
		t.Errorf("ObjectID() = %q, want phone digits", got)
	}

	withoutPhone := &Account{EntryID: "entry-2"}
	if got := withoutPhone.ObjectID(); got != "entry-2" {
		t.Errorf("ObjectID() = %q, want entry id", got)
	}
}
