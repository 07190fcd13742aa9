package glfwhost

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/host"
	"github.com/slint-ui/slint-sub001/painter"
)

// Graphics implements host.GraphicsAPI for GLFW surfaces: frames are
// rasterized in software and presented through a framebuffer blit.
type Graphics struct {
	target  *graphics.Pixmap
	current *Surface

	glReady bool
	tex     uint32
	fbo     uint32
}

// NewGraphics creates a presenter. GL state is initialized lazily on
// the first frame, once a window context exists.
func NewGraphics() *Graphics {
	return &Graphics{}
}

// BeginFrame makes the surface's GL context current and returns a
// painter targeting an offscreen pixmap sized to the framebuffer.
func (g *Graphics) BeginFrame(surface host.Surface) (painter.Painter, error) {
	s, ok := surface.(*Surface)
	if !ok {
		return nil, fmt.Errorf("glfwhost: surface is %T, not a glfw surface", surface)
	}
	s.win.MakeContextCurrent()
	if !g.glReady {
		if err := gl.Init(); err != nil {
			return nil, fmt.Errorf("glfwhost: gl init: %w", err)
		}
		gl.GenTextures(1, &g.tex)
		gl.GenFramebuffers(1, &g.fbo)
		g.glReady = true
	}

	w, h := s.win.GetFramebufferSize()
	if g.target == nil || g.target.Width() != w || g.target.Height() != h {
		g.target = graphics.NewPixmap(w, h)
	} else {
		g.target.Clear(graphics.Transparent)
	}
	g.current = s
	return painter.NewSoftwarePainter(g.target, s.ScaleFactor()), nil
}

// EndFrame uploads the frame into a texture and blits it to the
// window, flipped to GL's bottom-up framebuffer orientation.
func (g *Graphics) EndFrame() error {
	if g.current == nil {
		return fmt.Errorf("glfwhost: EndFrame without BeginFrame")
	}
	s := g.current
	g.current = nil

	img := g.target.ToImage()
	w, h := int32(g.target.Width()), int32(g.target.Height())

	gl.BindTexture(gl.TEXTURE_2D, g.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, g.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_2D, g.tex, 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, w, h, 0, h, w, 0,
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	s.win.SwapBuffers()
	return nil
}
