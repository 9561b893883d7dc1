package synth

// OutputKind discriminates the two result shapes.
type OutputKind int

const (
	// OutputFile references audio left on disk for later download.
	OutputFile OutputKind = iota + 1
	// OutputInline carries the audio as a base64 payload; nothing stays on
	// disk.
	OutputInline
)

// Output is a tagged union: a result holds either a file reference or an
// inline payload, never both. The zero value is no output at all.
type Output struct {
	kind OutputKind
	path string
	data string
}

// FileOutput references a file in the output directory.
func FileOutput(path string) Output {
	return Output{kind: OutputFile, path: path}
}

// InlineOutput carries base64-encoded audio.
func InlineOutput(base64Data string) Output {
	return Output{kind: OutputInline, data: base64Data}
}

// Kind returns the variant tag.
func (o Output) Kind() OutputKind { return o.kind }

// Path returns the file reference, if this is a file output.
func (o Output) Path() (string, bool) {
	return o.path, o.kind == OutputFile
}

// Base64 returns the inline payload, if this is an inline output.
func (o Output) Base64() (string, bool) {
	return o.data, o.kind == OutputInline
}
