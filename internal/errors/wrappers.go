package errors

import "fmt"

// IntrospectionError reports a failed lookup against the reflection system or the package loader
type IntrospectionError struct {
	*BaseError
	TypeName string // type being inspected
	Member   string // method name, empty when the whole type failed
}

// NewIntrospectionError creates a new introspection error
func NewIntrospectionError(typeName, message string) *IntrospectionError {
	return &IntrospectionError{
		BaseError: New(IntrospectionErrorCode, message).WithContext("type", typeName),
		TypeName:  typeName,
	}
}

// MethodNotFound reports a method name that the type does not provide
func MethodNotFound(typeName, method string, candidates []string) *IntrospectionError {
	err := &IntrospectionError{
		BaseError: New(NotFoundErrorCode, fmt.Sprintf("undefined method '%s' for %s", method, typeName)).
			WithContext("type", typeName).
			WithContext("method", method),
		TypeName: typeName,
		Member:   method,
	}
	if len(candidates) > 0 {
		err.WithSuggestion(fmt.Sprintf("did you mean one of: %v", candidates))
	}
	return err
}

// TypeNotFound reports a type name missing from a loaded package
func TypeNotFound(pkgPath, typeName string) *IntrospectionError {
	return &IntrospectionError{
		BaseError: New(NotFoundErrorCode, fmt.Sprintf("type '%s' not found in package '%s'", typeName, pkgPath)).
			WithContext("package", pkgPath).
			WithContext("type", typeName),
		TypeName: typeName,
	}
}

// SelectorError reports a malformed selector expression
type SelectorError struct {
	*BaseError
	Input  string
	Column int
}

// NewSelectorError creates a selector syntax error
func NewSelectorError(input string, column int, cause error) *SelectorError {
	err := &SelectorError{
		BaseError: Wrap(SyntaxErrorCode, fmt.Sprintf("invalid selector %q", input), cause),
		Input:     input,
		Column:    column,
	}
	err.WithContext("column", column)
	err.WithSuggestion("selectors look like path/to/pkg.Type or path/to/pkg.Type#Method")
	return err
}

// WrapIntrospectionError wraps a reflection or loader failure for the given type
func WrapIntrospectionError(typeName string, cause error) *IntrospectionError {
	return &IntrospectionError{
		BaseError: Wrap(IntrospectionErrorCode, fmt.Sprintf("failed to introspect %s", typeName), cause).
			WithContext("type", typeName),
		TypeName: typeName,
	}
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// WrapRenderError wraps a failure writing rendered output
func WrapRenderError(target string, cause error) *BaseError {
	return Wrap(RenderErrorCode, fmt.Sprintf("failed to render to %s", target), cause)
}

// AddToMultiple adds an error to a MultipleErrors, creating it if nil
func AddToMultiple(multiple **MultipleErrors, err PeekError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}
