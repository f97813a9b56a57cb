package production

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/comalice/reactorx"
)

// TraceEntry is one document of a YAML trace.
type TraceEntry[M any] struct {
	reactorx.Metadata `yaml:",inline"`
	Payload           M `yaml:"payload"`
}

// YAMLTracePublisher appends every applied mutation to w as a YAML document.
type YAMLTracePublisher[M any] struct {
	mu  sync.Mutex
	enc *yaml.Encoder
}

// NewYAMLTracePublisher creates a YAMLTracePublisher writing to w.
func NewYAMLTracePublisher[M any](w io.Writer) *YAMLTracePublisher[M] {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAMLTracePublisher[M]{enc: enc}
}

func (p *YAMLTracePublisher[M]) Publish(_ context.Context, mutation M, md reactorx.Metadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enc.Encode(TraceEntry[M]{Metadata: md, Payload: mutation}); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return nil
}

// Close flushes the encoder. The underlying writer is left open.
func (p *YAMLTracePublisher[M]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Close()
}

// ReadTrace decodes a YAML trace written by YAMLTracePublisher.
func ReadTrace[M any](r io.Reader) ([]TraceEntry[M], error) {
	dec := yaml.NewDecoder(r)
	var entries []TraceEntry[M]
	for {
		var e TraceEntry[M]
		err := dec.Decode(&e)
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, fmt.Errorf("yaml decode: %w", err)
		}
		entries = append(entries, e)
	}
}
