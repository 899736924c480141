//go:build darwin || linux

// Package ffi provides Go bindings to the formkit native host via purego.
// The host owns the platform event loop and native windows; Go receives
// events through a single callback and presents frames as JSON command
// lists. No cgo is involved.
package ffi

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// ============================================================================
// Library Loading
// ============================================================================

var (
	libHandle   uintptr
	libOnce     sync.Once
	libErr      error
	initialized bool

	libPathOverride string
)

// Library function pointers (populated by initLibrary)
var (
	// Core app functions
	fnAppRun         func(callback uintptr) int32
	fnAppRequestExit func()
	fnAppWake        func()
	fnHostVersion    func() uintptr

	// Window functions
	fnWindowCreate      func(config uintptr) int32
	fnWindowShow        func(id uint32)
	fnWindowHide        func(id uint32)
	fnWindowClose       func(id uint32)
	fnWindowSetTitle    func(id uint32, title uintptr)
	fnWindowSetBounds   func(id uint32, x, y int32, width, height uint32)
	fnWindowScaleFactor func(id uint32) float64
	fnWindowPresent     func(id uint32, frame uintptr, length uint64) int32

	// Text measurement
	fnMeasureTextWidth func(text uintptr, size float32) float32

	fnFreeString func(ptr uintptr)
)

// AppEventC matches the C struct layout for events from the host
type AppEventC struct {
	EventType   uint8
	_           [3]byte // padding
	WindowID    uint32
	Data1       float64
	Data2       float64
	ScaleFactor float64
}

// WindowConfigC matches the C struct layout for window creation
type WindowConfigC struct {
	Title     uintptr
	X         int32
	Y         int32
	Width     uint32
	Height    uint32
	Owner     uint32
	Resizable bool
	Popup     bool
}

// SetLibraryPath makes the next load use path instead of searching. It has
// no effect once the library is loaded.
func SetLibraryPath(path string) {
	libPathOverride = path
}

// getLibraryPath returns the path to the dynamic library
func getLibraryPath() string {
	if libPathOverride != "" {
		return libPathOverride
	}
	// Check environment variable first
	if path := os.Getenv("FORMKIT_LIB_PATH"); path != "" {
		return path
	}

	libName := "libformkit_host.so"
	if runtime.GOOS == "darwin" {
		libName = "libformkit_host.dylib"
	}

	// Check common locations
	searchPaths := []string{
		libName,
		filepath.Join("host", "build", libName),
	}

	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, libName),
			filepath.Join(execDir, "..", "lib", libName),
		)
		if runtime.GOOS == "darwin" {
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "Frameworks", libName))
		}
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			if absPath, err := filepath.Abs(path); err == nil {
				return absPath
			}
			return path
		}
	}

	// Default to library name (let the system find it)
	return libName
}

// initLibrary loads the dynamic library and registers all function pointers
func initLibrary() error {
	libOnce.Do(func() {
		libPath := getLibraryPath()
		log.Printf("ffi: loading native host from %s (%s/%s)", libPath, runtime.GOOS, runtime.GOARCH)

		libHandle, libErr = openLibrary(libPath)
		if libErr != nil {
			libErr = fmt.Errorf("ffi: load native host from %s: %w", libPath, libErr)
			return
		}
		if libErr = registerFunctions(); libErr != nil {
			return
		}
		initialized = true
	})
	return libErr
}

// Load loads the native host library without starting it.
func Load() error {
	return initLibrary()
}

type symbol struct {
	fptr any
	name string
}

func registerFunctions() error {
	required := []symbol{
		{&fnAppRun, "formkit_app_run"},
		{&fnAppRequestExit, "formkit_app_request_exit"},
		{&fnAppWake, "formkit_app_wake"},
		{&fnWindowCreate, "formkit_window_create"},
		{&fnWindowShow, "formkit_window_show"},
		{&fnWindowHide, "formkit_window_hide"},
		{&fnWindowClose, "formkit_window_close"},
		{&fnWindowSetTitle, "formkit_window_set_title"},
		{&fnWindowSetBounds, "formkit_window_set_bounds"},
		{&fnWindowScaleFactor, "formkit_window_scale_factor"},
		{&fnWindowPresent, "formkit_window_present"},
	}
	for _, s := range required {
		addr, err := getSymbol(libHandle, s.name)
		if err != nil {
			return fmt.Errorf("ffi: missing symbol %s: %w", s.name, err)
		}
		purego.RegisterFunc(s.fptr, addr)
	}

	optional := []symbol{
		{&fnHostVersion, "formkit_host_version"},
		{&fnMeasureTextWidth, "formkit_measure_text"},
		{&fnFreeString, "formkit_free_string"},
	}
	for _, s := range optional {
		if addr, err := getSymbol(libHandle, s.name); err == nil {
			purego.RegisterFunc(s.fptr, addr)
		} else {
			log.Printf("ffi: optional symbol %s not available", s.name)
		}
	}
	return nil
}

// cString returns a NUL terminated copy of s. The caller keeps it alive
// across the call.
func cString(s string) []byte {
	return append([]byte(s), 0)
}

// goString converts a C string pointer to a Go string
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Pointer(ptr + uintptr(length))) != 0 {
		length++
		if length > 1<<20 { // Safety limit: 1MB
			break
		}
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
}

// ============================================================================
// Global Handler for Callback
// ============================================================================

var (
	globalHandler EventHandler
	globalMutex   sync.Mutex
	callbackOnce  sync.Once
	callbackPtr   uintptr
)

// appCallback is the callback function called from the host
func appCallback(eventPtr uintptr) {
	globalMutex.Lock()
	handler := globalHandler
	globalMutex.Unlock()

	if handler == nil || eventPtr == 0 {
		return
	}

	event := (*AppEventC)(unsafe.Pointer(eventPtr))
	handler(Event{
		Type:        EventType(event.EventType),
		WindowID:    event.WindowID,
		Data1:       event.Data1,
		Data2:       event.Data2,
		ScaleFactor: event.ScaleFactor,
	})
}

// ============================================================================
// Core Functions
// ============================================================================

// Run starts the host event loop on the calling goroutine, which must be the
// process main thread on macOS. It returns after RequestExit.
func Run(handler EventHandler) error {
	if err := initLibrary(); err != nil {
		return err
	}

	globalMutex.Lock()
	globalHandler = handler
	globalMutex.Unlock()

	defer func() {
		globalMutex.Lock()
		globalHandler = nil
		globalMutex.Unlock()
	}()

	// purego callbacks are a limited resource; one is shared by every run.
	callbackOnce.Do(func() {
		callbackPtr = purego.NewCallback(appCallback)
	})

	if result := fnAppRun(callbackPtr); result != 0 {
		return &AppError{Code: int(result)}
	}
	return nil
}

// RequestExit asks the host loop to return. Safe to call from any goroutine.
func RequestExit() {
	if !initialized {
		return
	}
	fnAppRequestExit()
}

// Wake makes the host deliver an EventWake on its main thread. Safe to call
// from any goroutine.
func Wake() {
	if !initialized {
		return
	}
	fnAppWake()
}

// Version returns the host version string
func Version() string {
	if err := initLibrary(); err != nil || fnHostVersion == nil {
		return ""
	}
	ptr := fnHostVersion()
	s := goString(ptr)
	if fnFreeString != nil {
		fnFreeString(ptr)
	}
	return s
}

// ============================================================================
// Window Functions (main thread only)
// ============================================================================

// CreateWindow creates a hidden native window and returns its id.
func CreateWindow(cfg WindowConfig) (uint32, error) {
	if err := initLibrary(); err != nil {
		return 0, err
	}
	title := cString(cfg.Title)
	c := WindowConfigC{
		Title:     uintptr(unsafe.Pointer(&title[0])),
		X:         cfg.X,
		Y:         cfg.Y,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Owner:     cfg.Owner,
		Resizable: cfg.Resizable,
		Popup:     cfg.Popup,
	}
	id := fnWindowCreate(uintptr(unsafe.Pointer(&c)))
	runtime.KeepAlive(title)
	if id <= 0 {
		return 0, &AppError{Code: -4}
	}
	return uint32(id), nil
}

func ShowWindow(id uint32)  { fnWindowShow(id) }
func HideWindow(id uint32)  { fnWindowHide(id) }
func CloseWindow(id uint32) { fnWindowClose(id) }

func SetWindowTitle(id uint32, title string) {
	b := cString(title)
	fnWindowSetTitle(id, uintptr(unsafe.Pointer(&b[0])))
	runtime.KeepAlive(b)
}

// SetWindowBounds moves and resizes a window. Popup coordinates are
// relative to the owner.
func SetWindowBounds(id uint32, x, y int32, width, height uint32) {
	fnWindowSetBounds(id, x, y, width, height)
}

// WindowScaleFactor returns the window's physical pixels per logical unit.
func WindowScaleFactor(id uint32) float64 {
	return fnWindowScaleFactor(id)
}

// Present hands a JSON encoded frame to the window. The host copies it
// before returning.
func Present(id uint32, frame []byte) error {
	if len(frame) == 0 {
		return nil
	}
	result := fnWindowPresent(id, uintptr(unsafe.Pointer(&frame[0])), uint64(len(frame)))
	runtime.KeepAlive(frame)
	if result != 0 {
		return &AppError{Code: int(result)}
	}
	return nil
}

// MeasureText returns the width of text at the given font size in logical
// units, or ok false when the host cannot measure.
func MeasureText(text string, size float32) (width float32, ok bool) {
	if !initialized || fnMeasureTextWidth == nil {
		return 0, false
	}
	b := cString(text)
	w := fnMeasureTextWidth(uintptr(unsafe.Pointer(&b[0])), size)
	runtime.KeepAlive(b)
	return w, true
}
