package shader

// ShaderBuilderOption is a functional option applied to a shader during construction via NewShader.
type ShaderBuilderOption func(*shaderProgram)

// WithSource provides combined multi-stage source text directly, bypassing the
// file read. When set, the path argument to NewShader is only used to derive
// the shader name.
//
// Parameters:
//   - source: the combined multi-stage shader source text
//
// Returns:
//   - ShaderBuilderOption: a function that applies the source option to a shader
func WithSource(source string) ShaderBuilderOption {
	return func(s *shaderProgram) {
		s.source = source
	}
}

// WithName overrides the shader name normally derived from the source file name.
//
// Parameters:
//   - name: the shader identifier used in logs and error messages
//
// Returns:
//   - ShaderBuilderOption: a function that applies the name option to a shader
func WithName(name string) ShaderBuilderOption {
	return func(s *shaderProgram) {
		s.name = name
	}
}
