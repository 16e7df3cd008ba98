package texture

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

// Anisotropic filtering enums (GL 4.6 / EXT_texture_filter_anisotropic).
const (
	textureMaxAnisotropy    = 0x84FE
	maxTextureMaxAnisotropy = 0x84FF
)

// Sampler is the sampling policy shared by every texture.
type Sampler struct {
	WrapS, WrapT int32
	MinFilter    int32
	MagFilter    int32
	Anisotropy   float32
}

// DefaultSampler returns repeat wrapping, trilinear filtering and the given
// anisotropy. Values below 1 disable anisotropic filtering.
func DefaultSampler(maxAnisotropy float32) Sampler {
	if maxAnisotropy < 1 {
		maxAnisotropy = 1
	}
	return Sampler{
		WrapS:      gl.REPEAT,
		WrapT:      gl.REPEAT,
		MinFilter:  gl.LINEAR_MIPMAP_LINEAR,
		MagFilter:  gl.LINEAR,
		Anisotropy: maxAnisotropy,
	}
}

// Store owns GL textures and the single sampler object they are read through.
// Requires a current GL context.
type Store struct {
	textures []uint32
	names    []string
	sampler  uint32
	policy   Sampler
}

// NewStore creates the shared sampler at the device's maximum anisotropy.
func NewStore() *Store {
	var maxAniso float32
	gl.GetFloatv(maxTextureMaxAnisotropy, &maxAniso)
	// Unsupported enums leave a GL error behind; clear it.
	gl.GetError()

	s := &Store{policy: DefaultSampler(maxAniso)}
	gl.GenSamplers(1, &s.sampler)
	gl.SamplerParameteri(s.sampler, gl.TEXTURE_WRAP_S, s.policy.WrapS)
	gl.SamplerParameteri(s.sampler, gl.TEXTURE_WRAP_T, s.policy.WrapT)
	gl.SamplerParameteri(s.sampler, gl.TEXTURE_MIN_FILTER, s.policy.MinFilter)
	gl.SamplerParameteri(s.sampler, gl.TEXTURE_MAG_FILTER, s.policy.MagFilter)
	gl.SamplerParameterf(s.sampler, textureMaxAnisotropy, s.policy.Anisotropy)

	logger.Debug("texture sampler created", zap.Float32("anisotropy", s.policy.Anisotropy))
	return s
}

// Load decodes an image file and uploads it. Returns the texture index.
func (s *Store) Load(path string) (int, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return -1, err
	}
	idx := s.Upload(path, img)
	logger.Info("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
		zap.Int("index", idx))
	return idx, nil
}

// Upload creates an RGBA8 texture with a full mipmap chain and returns its index.
func (s *Store) Upload(name string, img *image.RGBA) int {
	flipped := FlipVertical(img)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(flipped.Rect.Dx()), int32(flipped.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&flipped.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	s.textures = append(s.textures, tex)
	s.names = append(s.names, name)
	return len(s.textures) - 1
}

// Bind binds texture idx and the shared sampler to the given unit.
func (s *Store) Bind(unit uint32, idx int) error {
	if idx < 0 || idx >= len(s.textures) {
		return fmt.Errorf("texture index %d out of range (%d loaded)", idx, len(s.textures))
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, s.textures[idx])
	gl.BindSampler(unit, s.sampler)
	return nil
}

// BindAll binds texture i to unit i.
func (s *Store) BindAll() {
	for i := range s.textures {
		_ = s.Bind(uint32(i), i)
	}
}

// Count returns the number of loaded textures.
func (s *Store) Count() int {
	return len(s.textures)
}

// Name returns the source name of texture idx.
func (s *Store) Name(idx int) string {
	return s.names[idx]
}

// Sampler returns the shared sampling policy.
func (s *Store) Sampler() Sampler {
	return s.policy
}

// Destroy releases all GL objects.
func (s *Store) Destroy() {
	if len(s.textures) > 0 {
		gl.DeleteTextures(int32(len(s.textures)), &s.textures[0])
	}
	if s.sampler != 0 {
		gl.DeleteSamplers(1, &s.sampler)
	}
	s.textures = nil
	s.names = nil
	s.sampler = 0
}
