package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cppx-tools/cppxgen/internal/lexer"
	helpers "github.com/cppx-tools/cppxgen/internal/utils"
)

// GenerateFile splits the extended C++ file at path into sibling .h and
// .cpp files next to it. Existing siblings are overwritten. On a lexical
// failure both outputs are removed and the lexer's *Error is returned
// unwrapped so callers can inspect the line number.
func GenerateFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	stem := helpers.Stem(path)
	dir := filepath.Dir(path)
	hdrPath := filepath.Join(dir, stem+".h")
	implPath := filepath.Join(dir, stem+".cpp")

	hdr, err := os.Create(hdrPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", hdrPath, err)
	}
	impl, err := os.Create(implPath)
	if err != nil {
		hdr.Close()
		return fmt.Errorf("create %s: %w", implPath, err)
	}

	blocks, lexErr := lexer.Lex(src)
	if lexErr != nil {
		hdr.Close()
		impl.Close()
		os.Remove(hdrPath)
		os.Remove(implPath)
		return lexErr
	}

	if err := Split(src, blocks, stem, hdr, impl); err != nil {
		hdr.Close()
		impl.Close()
		return err
	}
	if err := hdr.Close(); err != nil {
		return fmt.Errorf("close %s: %w", hdrPath, err)
	}
	if err := impl.Close(); err != nil {
		return fmt.Errorf("close %s: %w", implPath, err)
	}
	return nil
}
