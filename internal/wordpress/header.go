package wordpress

import (
	"regexp"
	"strings"

	"github.com/nao1215/wpkit/internal/model"
)

// Field names a ComponentMetadata field a header label populates.
type Field string

const (
	FieldName        Field = "name"
	FieldVersion     Field = "version"
	FieldDescription Field = "description"
	FieldAuthor      Field = "author"
	FieldURI         Field = "uri"
	FieldTemplate    Field = "template"

	// FieldExtra stores the value in ComponentMetadata.Extra under the label.
	FieldExtra Field = "extra"
)

// HeaderField maps one header label to a metadata field.
type HeaderField struct {
	Label string
	Field Field
}

// HeaderSpec describes the header block of one component kind.
type HeaderSpec struct {
	// Kind is the component kind the spec applies to.
	Kind model.ComponentKind

	// Marker, when set, is a literal that must appear in a candidate file
	// for it to be treated as the header-bearing file.
	Marker string

	// Fields are searched in order.
	Fields []HeaderField
}

// PluginHeaderSpec returns the labels read from plugin files.
func PluginHeaderSpec() HeaderSpec {
	return HeaderSpec{
		Kind:   model.KindPlugin,
		Marker: "Plugin Name:",
		Fields: []HeaderField{
			{Label: "Plugin Name", Field: FieldName},
			{Label: "Version", Field: FieldVersion},
			{Label: "Description", Field: FieldDescription},
			{Label: "Author", Field: FieldAuthor},
			{Label: "Plugin URI", Field: FieldURI},
		},
	}
}

// ThemeHeaderSpec returns the labels read from theme stylesheets.
func ThemeHeaderSpec() HeaderSpec {
	return HeaderSpec{
		Kind: model.KindTheme,
		Fields: []HeaderField{
			{Label: "Theme Name", Field: FieldName},
			{Label: "Version", Field: FieldVersion},
			{Label: "Description", Field: FieldDescription},
			{Label: "Author", Field: FieldAuthor},
			{Label: "Theme URI", Field: FieldURI},
			{Label: "Template", Field: FieldTemplate},
		},
	}
}

// HeaderSpecFor returns the built-in spec for kind.
func HeaderSpecFor(kind model.ComponentKind) (HeaderSpec, bool) {
	switch kind {
	case model.KindPlugin:
		return PluginHeaderSpec(), true
	case model.KindTheme:
		return ThemeHeaderSpec(), true
	default:
		return HeaderSpec{}, false
	}
}

// WithExtra returns a copy of s that also collects the given labels into
// ComponentMetadata.Extra. Blank labels and labels already present are
// ignored.
func (s HeaderSpec) WithExtra(labels ...string) HeaderSpec {
	out := s
	out.Fields = append([]HeaderField(nil), s.Fields...)
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || out.hasLabel(l) {
			continue
		}
		out.Fields = append(out.Fields, HeaderField{Label: l, Field: FieldExtra})
	}
	return out
}

func (s HeaderSpec) hasLabel(label string) bool {
	for _, f := range s.Fields {
		if strings.EqualFold(f.Label, label) {
			return true
		}
	}
	return false
}

// compiledField is a HeaderField with its pattern.
type compiledField struct {
	HeaderField
	re *regexp.Regexp
}

// headerParser applies a compiled HeaderSpec to file content.
type headerParser struct {
	spec   HeaderSpec
	fields []compiledField
}

func newHeaderParser(spec HeaderSpec) *headerParser {
	p := &headerParser{spec: spec}
	for _, f := range spec.Fields {
		p.fields = append(p.fields, compiledField{
			HeaderField: f,
			re:          regexp.MustCompile(`(?i)` + regexp.QuoteMeta(f.Label) + `:\s*(.+)`),
		})
	}
	return p
}

// accepts reports whether content may carry the header block.
func (p *headerParser) accepts(content string) bool {
	return p.spec.Marker == "" || strings.Contains(content, p.spec.Marker)
}

// apply overwrites fields of meta with every label found in content.
// Labels that do not match leave the defaults in place.
func (p *headerParser) apply(content string, meta *model.ComponentMetadata) {
	for _, f := range p.fields {
		m := f.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if value == "" {
			continue
		}

		switch f.Field {
		case FieldName:
			meta.Name = value
		case FieldVersion:
			meta.Version = value
		case FieldDescription:
			meta.Description = value
		case FieldAuthor:
			meta.Author = value
		case FieldURI:
			meta.URI = value
		case FieldTemplate:
			meta.Template = value
		case FieldExtra:
			if meta.Extra == nil {
				meta.Extra = make(map[string]string)
			}
			meta.Extra[f.Label] = value
		}
	}
}
