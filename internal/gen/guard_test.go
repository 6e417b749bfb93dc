package gen

import (
	"testing"

	"github.com/cppx-tools/cppxgen/internal/lexer"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name string
		src  string
		stem string
		want string
	}{
		{"plain file", "int x;\n", "util", "UTIL_H"},
		{"single namespace", "namespace app {\nint x;\n}\n", "app", "APP_APP_H"},
		{"nested namespaces", "namespace a {\nnamespace b {\n}\n}\n", "x", "A_B_X_H"},
		{"scoped namespace", "namespace a::b {\n}\n", "y", "A_B_Y_H"},
		{"forward declaration skipped", "class C;\nnamespace n {\n}\n", "z", "N_Z_H"},
		{"comment and directive skipped", "// hi\n#pragma once\nnamespace q {\n}\n", "w", "Q_W_H"},
		{"class body skipped", "class C {\nint x;\n};\n", "point", "POINT_H"},
		{"stem starting with digit", "int x;\n", "3d", "_3D_H"},
		{"stem with punctuation", "int x;\n", "my-lib.core", "MY_LIB_CORE_H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := lexer.Lex([]byte(tt.src))
			if err != nil {
				t.Fatalf("Lex error: %v", err)
			}
			if got := Guard([]byte(tt.src), blocks, tt.stem); got != tt.want {
				t.Fatalf("Guard: got %q, want %q", got, tt.want)
			}
		})
	}
}
