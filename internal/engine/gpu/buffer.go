// Package gpu owns the shader storage buffers and the two device passes.
//
// Ordering: host uploads are issued before the compute dispatch that reads
// them, and TransformPass.Run ends with a shader-storage barrier so the
// fragment stage sees the transformed triangles in the same frame.
package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// minBufferSize keeps empty uploads bindable.
const minBufferSize = 16

// StorageBuffer is a shader storage buffer bound at a fixed index.
// It only grows; smaller uploads reuse the existing store.
type StorageBuffer struct {
	id       uint32
	binding  uint32
	capacity int
	size     int
}

// NewStorageBuffer creates an empty buffer for the given binding index.
func NewStorageBuffer(binding uint32) *StorageBuffer {
	b := &StorageBuffer{binding: binding}
	gl.GenBuffers(1, &b.id)
	return b
}

// Upload writes items to the start of the buffer, growing it if needed.
func Upload[T any](b *StorageBuffer, items []T) {
	var zero T
	size := len(items) * int(unsafe.Sizeof(zero))
	var ptr unsafe.Pointer
	if len(items) > 0 {
		ptr = unsafe.Pointer(&items[0])
	}
	b.write(ptr, size)
}

// Reserve makes room for size bytes without writing data.
func (b *StorageBuffer) Reserve(size int) {
	b.write(nil, size)
}

func (b *StorageBuffer) write(data unsafe.Pointer, size int) {
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.id)
	if size > b.capacity || b.capacity == 0 {
		b.capacity = growCapacity(b.capacity, size)
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, b.capacity, nil, gl.DYNAMIC_DRAW)
	}
	if data != nil && size > 0 {
		gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, size, data)
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	b.size = size
}

// BindBase attaches the buffer to its binding index.
func (b *StorageBuffer) BindBase() {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, b.binding, b.id)
}

// Size returns the byte count of the last upload.
func (b *StorageBuffer) Size() int {
	return b.size
}

// Capacity returns the allocated byte count.
func (b *StorageBuffer) Capacity() int {
	return b.capacity
}

// Destroy deletes the GL buffer.
func (b *StorageBuffer) Destroy() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// growCapacity returns the allocation for need bytes given the current one.
func growCapacity(current, need int) int {
	if need < minBufferSize {
		need = minBufferSize
	}
	if need <= current {
		return current
	}
	return need
}
