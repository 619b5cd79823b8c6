// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/heightfield/internal/engine/gpu"
)

// Sources returns the vertex and fragment sources to compile. An empty path
// selects the embedded terrain shader for that stage.
func Sources(vertexPath, fragmentPath string) (string, string, error) {
	vs, err := readOr(vertexPath, TerrainVertexShader)
	if err != nil {
		return "", "", fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := readOr(fragmentPath, TerrainFragmentShader)
	if err != nil {
		return "", "", fmt.Errorf("fragment shader: %w", err)
	}
	return vs, fs, nil
}

func readOr(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Load reads the configured sources and links them into a program.
func Load(vertexPath, fragmentPath string) (gpu.Program, error) {
	vs, fs, err := Sources(vertexPath, fragmentPath)
	if err != nil {
		return 0, err
	}
	return CompileProgram(vs, fs)
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}

	return gpu.Program(program), nil
}

// Delete releases a program returned by CompileProgram.
func Delete(p gpu.Program) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}

	return shader, nil
}

func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(obj, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n)
	getLog(obj, n, nil, &buf[0])
	return string(buf[:n-1])
}
