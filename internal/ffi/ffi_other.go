//go:build !darwin && !linux

package ffi

func SetLibraryPath(string) {}

func Load() error { return ErrUnsupported }

func Run(EventHandler) error { return ErrUnsupported }

func RequestExit() {}
func Wake()        {}

func Version() string { return "" }

func CreateWindow(WindowConfig) (uint32, error) { return 0, ErrUnsupported }

func ShowWindow(uint32)                                    {}
func HideWindow(uint32)                                    {}
func CloseWindow(uint32)                                   {}
func SetWindowTitle(uint32, string)                        {}
func SetWindowBounds(uint32, int32, int32, uint32, uint32) {}

func WindowScaleFactor(uint32) float64 { return 1 }

func Present(uint32, []byte) error { return ErrUnsupported }

func MeasureText(string, float32) (float32, bool) { return 0, false }
