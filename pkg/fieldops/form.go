package fieldops

// Form is a multipart form payload for Upload operations. Field order is
// not significant to the API.
type Form struct {
	fields map[string]string
	files  []FormFile
}

// FormFile is a single file part.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// NewForm creates an empty multipart form payload.
func NewForm() *Form {
	return &Form{fields: map[string]string{}}
}

// WithField adds a text field.
func (f *Form) WithField(name, value string) *Form {
	f.fields[name] = value

	return f
}

// WithFile adds a file part.
func (f *Form) WithFile(field, filename string, content []byte) *Form {
	f.files = append(f.files, FormFile{Field: field, Filename: filename, Content: content})

	return f
}

// Fields returns the text fields.
func (f *Form) Fields() map[string]string {
	return f.fields
}

// Files returns the file parts.
func (f *Form) Files() []FormFile {
	return f.files
}
