package validation_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/JaimeStill/reel/pkg/validation"
)

type register struct {
	FullName string `json:"fullName" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30,handle"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestStruct(t *testing.T) {
	valid := register{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Username: "ada_l",
		Password: "correct-horse",
	}

	if err := validation.Struct(valid); err != nil {
		t.Fatalf("Struct(valid) = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*register)
		want   string
	}{
		{"blank name", func(r *register) { r.FullName = "   " }, "fullName is required"},
		{"bad email", func(r *register) { r.Email = "ada" }, "email must be a valid email"},
		{"short username", func(r *register) { r.Username = "ad" }, "username must be at least 3 characters"},
		{"uppercase username", func(r *register) { r.Username = "Ada" }, "username may contain only lowercase letters, digits, '.', '_' and '-'"},
		{"short password", func(r *register) { r.Password = "short" }, "password must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)

			err := validation.Struct(cmd)
			if !errors.Is(err, validation.ErrInvalid) {
				t.Fatalf("Struct() = %v, want ErrInvalid", err)
			}

			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T", err)
			}
			if !slices.Contains(verr.Details(), tt.want) {
				t.Errorf("details = %v, want %q", verr.Details(), tt.want)
			}
		})
	}
}
