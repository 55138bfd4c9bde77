package jxlcore

import "testing"

func TestPixelFormatStrideAlignment(t *testing.T) {
	f := PixelFormat{NumChannels: 3, DataType: DataTypeUint8, Align: 64}
	s := f.Stride(10)
	if s%64 != 0 {
		t.Errorf("Stride(10) = %d, not a multiple of align 64", s)
	}
	if s < 30 {
		t.Errorf("Stride(10) = %d, too small for 3 bytes * 10 px", s)
	}
}

func TestPixelFormatStrideNoAlign(t *testing.T) {
	f := PixelFormat{NumChannels: 4, DataType: DataTypeFloat, Align: 1}
	if got := f.Stride(5); got != 4*4*5 {
		t.Errorf("Stride(5) = %d, want %d", got, 4*4*5)
	}
}

func TestStatusKindString(t *testing.T) {
	if StatusGenericError.String() != "GenericError" {
		t.Errorf("StatusGenericError.String() = %q", StatusGenericError.String())
	}
}

func TestDefaultConfigRequestsUint8RGB(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Format.NumChannels != 3 || cfg.Format.DataType != DataTypeUint8 {
		t.Errorf("DefaultConfig() format = %+v", cfg.Format)
	}
}
