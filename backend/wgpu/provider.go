// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHALDevice is returned when a device provider does not expose HAL
// device and queue handles.
var ErrNoHALDevice = errors.New("wgpu: provider does not expose hal.Device and hal.Queue")

// halProvider is implemented by providers that hand out HAL handles
// directly, such as gogpu windows.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewFromProvider creates a renderer on the device shared by p. The target
// format defaults to the provider's surface format, or BGRA8Unorm when the
// provider is headless.
func NewFromProvider(p gpucontext.DeviceProvider, opts ...Option) (*Renderer, error) {
	device, queue, err := halHandles(p)
	if err != nil {
		return nil, err
	}
	format := p.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	all := append([]Option{WithFormat(format)}, opts...)
	return New(device, queue, all...)
}

func halHandles(p gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if hp, ok := p.(halProvider); ok {
		device, dok := hp.HalDevice().(hal.Device)
		queue, qok := hp.HalQueue().(hal.Queue)
		if dok && qok && device != nil && queue != nil {
			return device, queue, nil
		}
	}
	device, dok := p.Device().(hal.Device)
	queue, qok := p.Queue().(hal.Queue)
	if !dok || !qok || device == nil || queue == nil {
		return nil, nil, ErrNoHALDevice
	}
	return device, queue, nil
}
