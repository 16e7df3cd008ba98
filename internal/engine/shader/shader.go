// Package shader compiles GLSL stages into programs and reports which stage failed.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Compilation errors.
var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("program link failed")
)

// Stage names used in diagnostics.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
	StageCompute  = "compute"
	StageLink     = "link"
)

// StageError identifies the program and stage that failed, with the driver log.
type StageError struct {
	Program string
	Stage   string
	Log     string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s program, %s stage: %v: %s", e.Program, e.Stage, e.Err, e.Log)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// name labels the program in errors.
func CompileProgram(name, vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(name, vertexSrc, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(name, fragmentSrc, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	return link(name, vertShader, fragShader)
}

// CompileCompute compiles and links a single compute shader.
func CompileCompute(name, computeSrc string) (uint32, error) {
	compShader, err := compileShader(name, computeSrc, gl.COMPUTE_SHADER, StageCompute)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(compShader)

	return link(name, compShader)
}

func link(name string, shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &StageError{Program: name, Stage: StageLink, Log: cleanLog(log), Err: ErrLink}
	}
	return program, nil
}

func compileShader(name, source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, &StageError{Program: name, Stage: stage, Log: cleanLog(log), Err: ErrCompile}
	}
	return shader, nil
}

// cleanLog trims the NUL terminator and trailing whitespace from a driver log.
func cleanLog(log []byte) string {
	if i := strings.IndexByte(string(log), 0); i >= 0 {
		log = log[:i]
	}
	s := strings.TrimSpace(string(log))
	if s == "" {
		return "(no driver log)"
	}
	return s
}

// Uniform returns the uniform location, or -1 if inactive.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
