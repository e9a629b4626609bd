// Package fonts resolves font identifiers and builds the font table used by
// the captcha generator.
//
// An identifier is one of:
//   - "builtin:<name>", one of the Go fonts embedded in golang.org/x/image
//     (see [Builtins]);
//   - a path to a TrueType/OpenType file or collection;
//   - a bare system font name such as "DejaVuSans", looked up in the
//     platform font directories.
//
// Fonts are parsed with golang.org/x/image/font/opentype. Faces are created at
// 72 DPI so that a size is a pixel em size.
package fonts

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/matzehuels/captcha/pkg/errors"
)

// BuiltinPrefix marks identifiers that refer to embedded fonts.
const BuiltinPrefix = "builtin:"

// DefaultFont is the font used when a configuration names none.
const DefaultFont = BuiltinPrefix + "gomono"

// dpi makes opentype sizes equal to pixel sizes.
const dpi = 72

var builtins = map[string][]byte{
	"gobold":       gobold.TTF,
	"gobolditalic": gobolditalic.TTF,
	"goitalic":     goitalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
	"gomonobold":   gomonobold.TTF,
	"gomonoitalic": gomonoitalic.TTF,
	"goregular":    goregular.TTF,
	"gosmallcaps":  gosmallcaps.TTF,
}

// Builtins returns the identifiers of all embedded fonts, sorted.
func Builtins() []string {
	ids := make([]string, 0, len(builtins))
	for name := range builtins {
		ids = append(ids, BuiltinPrefix+name)
	}
	slices.Sort(ids)
	return ids
}

// IsBuiltin reports whether id names an embedded font.
func IsBuiltin(id string) bool {
	_, ok := builtins[strings.TrimPrefix(id, BuiltinPrefix)]
	return ok && strings.HasPrefix(id, BuiltinPrefix)
}

// Resolve returns the raw font data for an identifier. System font names are
// looked up through the locator installed with [SetLocator].
func Resolve(id string) ([]byte, error) {
	if name, ok := strings.CutPrefix(id, BuiltinPrefix); ok {
		data, found := builtins[name]
		if !found {
			return nil, errors.New(errors.ErrCodeFontNotFound, "unknown builtin font %q", name)
		}
		return data, nil
	}

	path, err := currentLocator().Find(context.Background(), id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read font %s", path)
	}
	return data, nil
}

// Parse resolves and parses an identifier. Collections (.ttc/.otc) yield
// their first font.
func Parse(id string) (*opentype.Font, error) {
	data, err := Resolve(id)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	coll, cerr := opentype.ParseCollection(data)
	if cerr != nil || coll.NumFonts() == 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font %q", id)
	}
	f, err = coll.Font(0)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font %q", id)
	}
	return f, nil
}

// Family returns the family name stored in the font, or "" if absent.
func Family(f *opentype.Font) string {
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Entry is one font at one pixel size.
type Entry struct {
	ID   string
	Size int
	Font *opentype.Font
}

// NewFace creates a face for the entry. A face is not safe for concurrent
// use, so each render creates its own from the shared parsed font.
func (e Entry) NewFace() (font.Face, error) {
	face, err := opentype.NewFace(e.Font, &opentype.FaceOptions{
		Size:    float64(e.Size),
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "face %s@%d", e.ID, e.Size)
	}
	return face, nil
}

// String returns "id@size".
func (e Entry) String() string {
	return fmt.Sprintf("%s@%d", e.ID, e.Size)
}
