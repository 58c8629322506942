package repository

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/krew-solutions/ascetic-ast-go/asceticast/asjson"
	"github.com/krew-solutions/ascetic-ast-go/asceticast/ast"
)

var ErrNotAnObject = errors.New("encoded value is not an object")

// Codec turns a node into bytes and back. Decoding goes through the node's
// portable projection, so private fields are not preserved.
type Codec interface {
	Encode(node *ast.Node) ([]byte, error)
	Decode(data []byte) (*ast.Node, error)
}

type JsonCodec struct{}

func (c JsonCodec) Encode(node *ast.Node) ([]byte, error) {
	return json.Marshal(node)
}

func (c JsonCodec) Decode(data []byte) (*ast.Node, error) {
	v, err := asjson.Decode(data)
	if err != nil {
		return nil, err
	}
	return toNode(v)
}

type YamlCodec struct{}

func (c YamlCodec) Encode(node *ast.Node) ([]byte, error) {
	return yaml.Marshal(node)
}

func (c YamlCodec) Decode(data []byte) (*ast.Node, error) {
	v, err := asjson.DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return toNode(v)
}

func toNode(v any) (*ast.Node, error) {
	obj, ok := v.(*asjson.Object)
	if !ok {
		return nil, errors.Wrapf(ErrNotAnObject, "got %T", v)
	}
	return ast.FromJSON(obj), nil
}

func NewZlibCompressor(delegate Codec) *ZlibCompressor {
	return &ZlibCompressor{delegate: delegate}
}

type ZlibCompressor struct {
	delegate Codec
}

func (c *ZlibCompressor) Encode(node *ast.Node) ([]byte, error) {
	data, err := c.delegate.Encode(node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err = w.Write(data); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *ZlibCompressor) Decode(data []byte) (*ast.Node, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "unable to open zlib stream")
	}
	defer r.Close()
	decompressed, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decompress")
	}
	return c.delegate.Decode(decompressed)
}
