package iocontext

import (
	"context"
	"io"
	"testing"
)

func TestDefaultIO(t *testing.T) {
	streams := DefaultIO()
	if streams.Out == nil || streams.ErrOut == nil || streams.In == nil {
		t.Error("DefaultIO should return non-nil streams")
	}
}

func TestWithIO(t *testing.T) {
	streams, buffers := TestIO("")
	ctx := WithIO(context.Background(), streams)

	got := GetIO(ctx)
	if got.Out != buffers.Out {
		t.Error("GetIO should return the IO set with WithIO")
	}
}

func TestGetIO_DefaultsWhenNotSet(t *testing.T) {
	if GetIO(context.Background()) == nil {
		t.Error("GetIO should return default IO when not set")
	}
}

func TestTestIO(t *testing.T) {
	streams, buffers := TestIO("Dwu85P9SOIk\n")
	data, err := io.ReadAll(streams.In)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Dwu85P9SOIk\n" {
		t.Errorf("In = %q", data)
	}
	_, _ = io.WriteString(streams.Out, "ok")
	if buffers.Out.String() != "ok" {
		t.Errorf("Out = %q", buffers.Out.String())
	}
	if streams.IsTerminal() {
		t.Error("buffers are never terminals")
	}
}
