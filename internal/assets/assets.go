package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultStyleName    = "report"
	DefaultTemplateName = "page"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name") // empty, or holds a separator or dot
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// Source hands the converter its report style sheet and page template.
type Source interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Bundle serves assets from a file system laid out as styles/<name>.css and
// templates/<name>.html.
type Bundle struct {
	files fs.FS
}

// Embedded returns the bundle compiled into the binary.
func Embedded() *Bundle {
	return &Bundle{files: embedded}
}

// LoadStyle returns styles/<name>.css.
func (b *Bundle) LoadStyle(name string) (string, error) {
	return b.read("styles", name, ".css", ErrStyleNotFound)
}

// LoadTemplate returns templates/<name>.html.
func (b *Bundle) LoadTemplate(name string) (string, error) {
	return b.read("templates", name, ".html", ErrTemplateNotFound)
}

func (b *Bundle) read(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(b.files, dir+"/"+name+ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(data), nil
}

// ValidateAssetName accepts only bare names such as "report": one name maps
// to exactly one file inside the bundle.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// LoadStyle loads a style from the embedded bundle.
func LoadStyle(name string) (string, error) {
	return Embedded().LoadStyle(name)
}

// LoadTemplate loads a template from the embedded bundle.
func LoadTemplate(name string) (string, error) {
	return Embedded().LoadTemplate(name)
}

var _ Source = (*Bundle)(nil)
