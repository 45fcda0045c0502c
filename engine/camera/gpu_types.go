package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (96 bytes, WGSL uniform aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Size: 96 bytes.
type GPUCameraUniform struct {
	ViewProj          [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	CameraPosition    [3]float32  // offset 64: world-space camera position (vec3<f32>)
	FieldOfView       float32     // offset 76: horizontal field of view in degrees
	PostProcessWeight float32     // offset 80: blend weight for effect post-process settings
	ExposureBias      float32     // offset 84: effect exposure bias, scaled by PostProcessWeight in the shader
	VignetteIntensity float32     // offset 88: effect vignette intensity
	Saturation        float32     // offset 92: effect saturation
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[76:], math.Float32bits(g.FieldOfView))
	binary.LittleEndian.PutUint32(buf[80:], math.Float32bits(g.PostProcessWeight))
	binary.LittleEndian.PutUint32(buf[84:], math.Float32bits(g.ExposureBias))
	binary.LittleEndian.PutUint32(buf[88:], math.Float32bits(g.VignetteIntensity))
	binary.LittleEndian.PutUint32(buf[92:], math.Float32bits(g.Saturation))
	return buf
}
