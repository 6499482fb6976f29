package bibtex

// Record is one bibliographic record: an entry type, a citation key, and the
// ordered list of fields. Records are plain values; transforms return new
// Records rather than mutating their input.
type Record struct {
	Type   string
	Key    string
	Fields Fields
}

// Field is a single name/value pair inside a record body. Values are kept as
// written, including any surrounding double quotes.
type Field struct {
	Name  string
	Value string
}

// Fields is the ordered field list of a record. Order is significant: it is
// the order fields were encountered on decode and the order Encode emits.
type Fields []Field

// Get returns the value for name and whether the field exists.
func (fs Fields) Get(name string) (string, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether a field with the given name exists.
func (fs Fields) Has(name string) bool {
	_, ok := fs.Get(name)
	return ok
}

// Clone returns an independent copy of the field list.
func (fs Fields) Clone() Fields {
	if fs == nil {
		return nil
	}
	out := make(Fields, len(fs))
	copy(out, fs)
	return out
}

// Set returns a copy of the field list with name set to value: replaced in
// place when the name already exists, appended at the end otherwise.
func (fs Fields) Set(name, value string) Fields {
	out := fs.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Name: name, Value: value})
}
