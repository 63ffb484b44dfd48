package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/grad/internal/tensor"
)

const (
	metadataKey   = "__metadata__"
	dtypeF32      = "F32"
	maxHeaderSize = 100 << 20
)

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// File is the decoded content of a SafeTensors file.
type File struct {
	Metadata map[string]string
	Tensors  map[string]tensor.Tensor
}

// Names returns the tensor names in alphabetical order.
func (f File) Names() []string {
	names := make([]string, 0, len(f.Tensors))
	for name := range f.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteSafeTensors writes tensors to a SafeTensors file.
//
// Tensors are written in alphabetical order by name. The checksum of the
// data section is added to metadata under ChecksumKey.
func WriteSafeTensors(path string, tensors map[string]tensor.Tensor, metadata map[string]string) error {
	data, err := EncodeSafeTensors(tensors, metadata)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "write safetensors")
	}
	return nil
}

// EncodeSafeTensors returns the SafeTensors encoding of tensors.
func EncodeSafeTensors(tensors map[string]tensor.Tensor, metadata map[string]string) ([]byte, error) {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if name == metadataKey {
			return nil, errors.Errorf("tensor name %q is reserved", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	// Tensor data, in name order
	var payload bytes.Buffer
	header := make(map[string]any, len(names)+1)
	for _, name := range names {
		t := tensors[name]
		start := int64(payload.Len())
		for _, v := range t.Data() {
			if err := binary.Write(&payload, binary.LittleEndian, math.Float32bits(v)); err != nil {
				return nil, errors.Wrapf(err, "encode tensor %s", name)
			}
		}

		shape := make([]int64, len(t.Shape()))
		for i, dim := range t.Shape() {
			shape[i] = int64(dim)
		}
		header[name] = SafeTensorHeader{
			DType:       dtypeF32,
			Shape:       shape,
			DataOffsets: [2]int64{start, int64(payload.Len())},
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	sum := ComputeChecksum(payload.Bytes())
	meta[ChecksumKey] = hex.EncodeToString(sum[:])
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, errors.Wrap(err, "marshal header")
	}

	out := make([]byte, 8, 8+len(headerJSON)+payload.Len())
	binary.LittleEndian.PutUint64(out, uint64(len(headerJSON)))
	out = append(out, headerJSON...)
	return append(out, payload.Bytes()...), nil
}

// ReadSafeTensors reads a SafeTensors file written by WriteSafeTensors or
// any other F32-only producer.
func ReadSafeTensors(path string) (File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the caller.
	if err != nil {
		return File{}, errors.Wrap(err, "read safetensors")
	}
	file, err := DecodeSafeTensors(data)
	if err != nil {
		return File{}, errors.Wrapf(err, "decode %s", path)
	}
	return file, nil
}

// DecodeSafeTensors parses the SafeTensors encoding in data.
func DecodeSafeTensors(data []byte) (File, error) {
	if len(data) < 8 {
		return File{}, &ValidationError{Err: ErrOutOfBounds, Details: "file shorter than header size"}
	}
	headerSize := binary.LittleEndian.Uint64(data[:8])
	if headerSize > maxHeaderSize {
		return File{}, &ValidationError{Err: ErrHeaderTooLarge, Details: "header size exceeds limit"}
	}
	if headerSize > uint64(len(data)-8) {
		return File{}, &ValidationError{Err: ErrOutOfBounds, Details: "header extends beyond file"}
	}
	payload := data[8+headerSize:]

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data[8:8+headerSize], &raw); err != nil {
		return File{}, errors.Wrap(err, "parse header")
	}

	file := File{
		Metadata: map[string]string{},
		Tensors:  make(map[string]tensor.Tensor, len(raw)),
	}
	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &file.Metadata); err != nil {
			return File{}, errors.Wrap(err, "parse metadata")
		}
		delete(raw, metadataKey)
	}
	if stored, ok := file.Metadata[ChecksumKey]; ok {
		if err := ValidateChecksum(payload, stored); err != nil {
			return File{}, err
		}
	}

	headers := make(map[string]SafeTensorHeader, len(raw))
	for name, msg := range raw {
		var h SafeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return File{}, errors.Wrapf(err, "parse header of tensor %s", name)
		}
		if err := validateHeader(name, h, int64(len(payload))); err != nil {
			return File{}, err
		}
		headers[name] = h
	}
	if err := checkOverlap(headers); err != nil {
		return File{}, err
	}

	for name, h := range headers {
		values := make([]float32, (h.DataOffsets[1]-h.DataOffsets[0])/4)
		chunk := payload[h.DataOffsets[0]:h.DataOffsets[1]]
		for i := range values {
			values[i] = math.Float32frombits(binary.LittleEndian.Uint32(chunk[4*i:]))
		}

		shape := make(tensor.Shape, len(h.Shape))
		for i, dim := range h.Shape {
			shape[i] = int(dim)
		}
		t, err := tensor.FromSlice(values, shape)
		if err != nil {
			return File{}, errors.Wrapf(err, "tensor %s", name)
		}
		file.Tensors[name] = t
	}
	return file, nil
}

func validateHeader(name string, h SafeTensorHeader, dataSize int64) error {
	if h.DType != dtypeF32 {
		return &ValidationError{Err: ErrUnsupportedDType, Tensor: name, Details: h.DType}
	}

	start, end := h.DataOffsets[0], h.DataOffsets[1]
	if start < 0 || end < start || end > dataSize {
		return &ValidationError{Err: ErrOutOfBounds, Tensor: name,
			Details: "offsets outside the data section"}
	}

	// The product is bounded by the byte range, so it cannot overflow.
	maxElements := (end - start) / 4
	elements := int64(1)
	for _, dim := range h.Shape {
		if dim <= 0 {
			return &ValidationError{Err: ErrOutOfBounds, Tensor: name, Details: "non-positive dimension"}
		}
		if elements > maxElements/dim {
			return &ValidationError{Err: ErrOutOfBounds, Tensor: name,
				Details: "shape does not match data size"}
		}
		elements *= dim
	}
	if elements*4 != end-start {
		return &ValidationError{Err: ErrOutOfBounds, Tensor: name,
			Details: "shape does not match data size"}
	}
	return nil
}

func checkOverlap(headers map[string]SafeTensorHeader) error {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return headers[names[i]].DataOffsets[0] < headers[names[j]].DataOffsets[0]
	})

	for i := 1; i < len(names); i++ {
		if headers[names[i]].DataOffsets[0] < headers[names[i-1]].DataOffsets[1] {
			return &ValidationError{Err: ErrOffsetOverlap, Tensor: names[i],
				Details: "overlaps " + names[i-1]}
		}
	}
	return nil
}
