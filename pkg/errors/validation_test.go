package errors

import (
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "react", false},
		{"valid with dash", "my-package", false},
		{"valid with underscore", "my_package", false},
		{"valid with dot", "my.package", false},
		{"valid scoped npm", "@scope/package", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("expected INVALID_PACKAGE code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateNpmPackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "react", false},
		{"scoped", "@babel/core", false},
		{"dots and dashes", "lodash.debounce", false},
		{"legacy uppercase", "JSONStream", false},
		{"tilde", "~utils", false},

		{"empty", "", true},
		{"space", "my package", true},
		{"scope without name", "@babel/", true},
		{"nested scope", "@a/b/c", true},
		{"leading dot", ".hidden", true},
		{"traversal", "@scope/..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNpmPackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNpmPackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is root", "", false},
		{"root", "/", false},
		{"absolute file", "/src/index.js", false},
		{"relative file", "dist/react.js", false},
		{"dotfile", "/.npmignore", false},
		{"double dot inside name", "/a..b.js", false},

		{"traversal", "/src/../../etc/passwd", true},
		{"leading traversal", "../x", true},
		{"backslash", "\\windows\\path", true},
		{"control char", "/a\x01b", true},
		{"too long", "/" + strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
