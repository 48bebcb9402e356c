package dust

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer owns the device-side half of the particle field: the shared quad
// vertex buffer, the growable instance buffer, the configured pipeline and,
// for the uniform backend, the constants buffer and bind group.
//
// The renderer performs no internal locking. Constant updates and instance
// uploads must happen strictly between draws; the surrounding render loop
// owns that ordering.
type Renderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	format wgpu.TextureFormat
	log    Logger

	backend   ProgramBackend
	constants RenderConstants
	program   *ShaderProgram
	pipeline  *wgpu.RenderPipeline

	vertexBuf   *wgpu.Buffer
	vertexCount uint32

	instanceBuf *wgpu.Buffer
	instanceCap int
	instanceLen int

	paramsBuf *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

// NewRenderer configures backend with constants, builds the pipeline and
// uploads the shared quad shape. A nil logger is replaced with a no-op one.
func NewRenderer(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, backend ProgramBackend, constants RenderConstants, log Logger) (*Renderer, error) {
	if err := constants.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		device:    device,
		queue:     queue,
		format:    format,
		log:       ensureLogger(log),
		backend:   backend,
		constants: constants,
	}

	if err := r.configure(constants); err != nil {
		return nil, err
	}

	shape := QuadShape()
	vertexBuf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "particle shape",
		Contents: wgpu.ToBytes(shape),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("create shape buffer: %w", err)
	}
	r.vertexBuf = vertexBuf
	r.vertexCount = uint32(len(shape))

	r.log.Infof("particle renderer ready: backend=%s viewport=%gx%g size=%g",
		backend.Name(), constants.ScreenWidth, constants.ScreenHeight, constants.ParticleSize)
	return r, nil
}

// configure runs the backend and swaps in the resulting pipeline. For the
// uniform backend the pipeline is built once and later calls only rewrite
// the constants buffer.
func (r *Renderer) configure(constants RenderConstants) error {
	if r.program != nil && r.program.Uniform {
		r.constants = constants
		return r.writeParams()
	}

	program, err := r.backend.Configure(constants)
	if err != nil {
		return err
	}
	pipeline, err := createParticlePipeline(r.device, r.format, program)
	if err != nil {
		return err
	}

	if r.pipeline != nil {
		r.pipeline.Release()
	}
	r.pipeline = pipeline
	r.program = program
	r.constants = constants

	if program.Uniform {
		if err := r.createParamsBinding(); err != nil {
			return err
		}
	}
	r.log.Debugf("configured program %s (%s)", program.ID, program.Label)
	return nil
}

func (r *Renderer) paramsBytes() []byte {
	return wgpu.ToBytes([]float32{
		r.constants.ParticleSize,
		r.constants.ScreenWidth,
		r.constants.ScreenHeight,
		0, // pad to 16 bytes, uniform block layout
	})
}

func (r *Renderer) createParamsBinding() error {
	paramsBuf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "particle render params",
		Contents: r.paramsBytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}

	layout := r.pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "particle render params",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  paramsBuf,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		paramsBuf.Release()
		return fmt.Errorf("create params bind group: %w", err)
	}

	r.paramsBuf = paramsBuf
	r.bindGroup = bindGroup
	return nil
}

func (r *Renderer) writeParams() error {
	if err := r.queue.WriteBuffer(r.paramsBuf, 0, r.paramsBytes()); err != nil {
		return fmt.Errorf("write params buffer: %w", err)
	}
	return nil
}

// Constants returns the constants in effect for the next draw.
func (r *Renderer) Constants() RenderConstants { return r.constants }

// SetParticleSize changes the shape scale, effective next draw.
func (r *Renderer) SetParticleSize(size float32) error {
	next := r.constants
	next.ParticleSize = size
	if err := next.Validate(); err != nil {
		return err
	}
	return r.configure(next)
}

// SetViewport changes the normalization dimensions, effective next draw.
// Call on window resize, between draws only.
func (r *Renderer) SetViewport(width, height float32) error {
	next := r.constants
	next.ScreenWidth = width
	next.ScreenHeight = height
	if err := next.Validate(); err != nil {
		return err
	}
	return r.configure(next)
}

// UploadInstances writes the per-instance stream for the next draw. The
// buffer grows to the next power of two when the count exceeds its capacity;
// it never shrinks. Must complete before Draw is encoded for the same frame.
func (r *Renderer) UploadInstances(instances []Instance) error {
	r.instanceLen = len(instances)
	if len(instances) == 0 {
		return nil
	}

	if len(instances) > r.instanceCap {
		capacity := nextPowerOfTwo(len(instances))
		padded := make([]Instance, capacity)
		copy(padded, instances)

		if r.instanceBuf != nil {
			r.instanceBuf.Release()
		}
		buf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "particle instances",
			Contents: wgpu.ToBytes(padded),
			Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			r.instanceBuf = nil
			r.instanceCap = 0
			r.instanceLen = 0
			return fmt.Errorf("create instance buffer: %w", err)
		}
		r.instanceBuf = buf
		r.instanceCap = capacity
		r.log.Debugf("instance buffer grown to %d instances", capacity)
		return nil
	}

	if err := r.queue.WriteBuffer(r.instanceBuf, 0, wgpu.ToBytes(instances)); err != nil {
		return fmt.Errorf("write instance buffer: %w", err)
	}
	return nil
}

// Draw encodes the instanced draw into pass: shape stream at slot 0,
// instance stream at slot 1, then 6 vertices for every live instance.
// Out-of-viewport particles clip in the rasterizer; no CPU culling.
func (r *Renderer) Draw(pass *wgpu.RenderPassEncoder) {
	if r.instanceLen == 0 {
		return
	}
	pass.SetPipeline(r.pipeline)
	pass.SetVertexBuffer(0, r.vertexBuf, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, r.instanceBuf, 0, wgpu.WholeSize)
	if r.bindGroup != nil {
		pass.SetBindGroup(0, r.bindGroup, nil)
	}
	pass.Draw(r.vertexCount, uint32(r.instanceLen), 0, 0)
}

// Release frees all device resources. The renderer is unusable afterwards.
func (r *Renderer) Release() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.paramsBuf != nil {
		r.paramsBuf.Release()
		r.paramsBuf = nil
	}
	if r.instanceBuf != nil {
		r.instanceBuf.Release()
		r.instanceBuf = nil
	}
	if r.vertexBuf != nil {
		r.vertexBuf.Release()
		r.vertexBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
