package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"github.com/anthonynsimon/bild/transform"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureKind selects the wrap mode of a loaded texture.
type TextureKind int

const (
	// TextureOpaque repeats in both directions.
	TextureOpaque TextureKind = iota
	// TextureTransparent clamps to the edge so blended borders do not bleed.
	TextureTransparent
)

func (k TextureKind) wrap() int32 {
	if k == TextureTransparent {
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}

// CubemapFaces are image paths in +X, -X, +Y, -Y, +Z, -Z order.
type CubemapFaces [6]string

// TextureLoader decodes images and uploads them as textures. FlipVertically is
// read on every call so it can be toggled between loads.
type TextureLoader struct {
	Device         gpu.Device
	FlipVertically bool
}

// pixels is a decoded image packed tightly with 1, 3 or 4 channels.
type pixels struct {
	data          []byte
	width, height int
	channels      int
}

func (p pixels) format() uint32 {
	switch p.channels {
	case 1:
		return gl.RED
	case 3:
		return gl.RGB
	default:
		return gl.RGBA
	}
}

func channelCount(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

func decodeImage(r io.Reader, flip bool) (pixels, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return pixels{}, err
	}
	channels := channelCount(img)

	var rgba *image.RGBA
	if flip {
		rgba = transform.FlipV(img)
	} else {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return pixels{}, fmt.Errorf("empty image")
	}
	if channels == 4 {
		return pixels{data: rgba.Pix, width: w, height: h, channels: 4}, nil
	}

	out := make([]byte, 0, w*h*channels)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, row[x*4:x*4+channels]...)
		}
	}
	return pixels{data: out, width: w, height: h, channels: channels}, nil
}

func (l *TextureLoader) upload(target uint32, p pixels) {
	format := p.format()
	if p.channels != 4 {
		l.Device.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}
	l.Device.TexImage2D(target, 0, int32(format), int32(p.width), int32(p.height), format, gl.UNSIGNED_BYTE, p.data)
	if p.channels != 4 {
		l.Device.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	}
}

func (l *TextureLoader) create(name string, p pixels, kind TextureKind) uint32 {
	dev := l.Device
	textureID := dev.GenTexture()
	dev.BindTexture(gl.TEXTURE_2D, textureID)
	l.upload(gl.TEXTURE_2D, p)
	dev.GenerateMipmap(gl.TEXTURE_2D)

	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, kind.wrap())
	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, kind.wrap())
	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	dev.BindTexture(gl.TEXTURE_2D, 0)

	logger.Log.Debug("Texture loaded",
		zap.String("name", name),
		zap.Uint32("textureID", textureID),
		zap.Int("width", p.width),
		zap.Int("height", p.height),
		zap.Int("channels", p.channels))
	return textureID
}

// Load reads an image file into a new 2D texture. Failures are logged and
// return 0 without creating a texture object.
func (l *TextureLoader) Load(path string, kind TextureKind) uint32 {
	f, err := os.Open(path)
	if err != nil {
		logger.Log.Error("Texture failed to load", zap.String("path", path), zap.Error(err))
		return 0
	}
	defer f.Close()

	p, err := decodeImage(f, l.FlipVertically)
	if err != nil {
		logger.Log.Error("Texture failed to decode", zap.String("path", path), zap.Error(err))
		return 0
	}
	return l.create(path, p, kind)
}

// LoadBytes is Load for an encoded image already in memory.
func (l *TextureLoader) LoadBytes(name string, data []byte, kind TextureKind) uint32 {
	p, err := decodeImage(bytes.NewReader(data), l.FlipVertically)
	if err != nil {
		logger.Log.Error("Texture failed to decode", zap.String("name", name), zap.Error(err))
		return 0
	}
	return l.create(name, p, kind)
}

// LoadCubemap uploads six faces into one cubemap texture. If any face cannot
// be read the partial texture is released and 0 is returned.
func (l *TextureLoader) LoadCubemap(faces CubemapFaces) uint32 {
	dev := l.Device
	textureID := dev.GenTexture()
	dev.BindTexture(gl.TEXTURE_CUBE_MAP, textureID)

	for i, face := range faces {
		p, err := l.readFace(face)
		if err != nil {
			logger.Log.Error("Cubemap texture failed to load",
				zap.String("path", face),
				zap.Int("face", i),
				zap.Error(err))
			dev.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
			dev.DeleteTexture(textureID)
			return 0
		}
		l.upload(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), p)
	}

	dev.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	dev.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	dev.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	dev.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	dev.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	dev.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return textureID
}

func (l *TextureLoader) readFace(path string) (pixels, error) {
	f, err := os.Open(path)
	if err != nil {
		return pixels{}, err
	}
	defer f.Close()
	return decodeImage(f, l.FlipVertically)
}
