package auto

import (
	"math"
	"sync"
	"syscall"

	"github.com/go-vgo/robotgo"

	"github.com/deskpilot/deskpilot/internal/logger"
)

// Windows juggles three coordinate spaces:
//
//   - physical pixels: what robotgo.CaptureImg returns, and what callers
//     hand to Click/MoveTo (coordinates taken from screenshots);
//   - logical pixels: physical / DPI scale;
//   - input coordinates: what robotgo.Move expects, which depending on
//     robotgo version and process DPI awareness may be either of the two.
//
// Rather than assume, we detect the input space once by comparing the
// capture size against robotgo.GetScreenSize. coordScale maps capture
// coordinates to input coordinates:
//
//	NormalizePointForInput:  capture -> input = v / coordScale
//	NormalizePointForScreen: input -> capture = v * coordScale

var (
	coordScaleMu   sync.Mutex
	cachedScaleX   float64
	cachedScaleY   float64
	coordsDetected bool
	detectLogOnce  sync.Once
)

var (
	user32DPI             = syscall.NewLazyDLL("user32.dll")
	gdi32DPI              = syscall.NewLazyDLL("gdi32.dll")
	procGetDpiForWindow   = user32DPI.NewProc("GetDpiForWindow")
	procGetDeviceCaps     = gdi32DPI.NewProc("GetDeviceCaps")
	procGetDC             = user32DPI.NewProc("GetDC")
	procReleaseDC         = user32DPI.NewProc("ReleaseDC")
	procGetForegroundWnd  = user32DPI.NewProc("GetForegroundWindow")
	procGetDesktopWindow  = user32DPI.NewProc("GetDesktopWindow")

	cachedDPIScale float64
)

const logpixelsX = 88

// GetDPIScale returns the Windows DPI scale (1.0 = 100%, 1.5 = 150%).
func GetDPIScale() float64 {
	if cachedDPIScale > 0 {
		return cachedDPIScale
	}

	var dpi int

	// GetDpiForWindow is available on Windows 10 1607+.
	if procGetDpiForWindow.Find() == nil {
		hwnd, _, _ := procGetForegroundWnd.Call()
		if hwnd == 0 {
			hwnd, _, _ = procGetDesktopWindow.Call()
		}
		if hwnd != 0 {
			d, _, _ := procGetDpiForWindow.Call(hwnd)
			if d > 0 {
				dpi = int(d)
			}
		}
	}

	// Fall back to GDI GetDeviceCaps.
	if dpi == 0 && procGetDC.Find() == nil && procGetDeviceCaps.Find() == nil {
		dc, _, _ := procGetDC.Call(0)
		if dc != 0 {
			d, _, _ := procGetDeviceCaps.Call(dc, uintptr(logpixelsX))
			if d > 0 {
				dpi = int(d)
			}
			procReleaseDC.Call(0, dc)
		}
	}

	if dpi <= 0 {
		dpi = 96
	}

	scale := float64(dpi) / 96.0
	if scale < 0.5 || scale > 4.0 {
		scale = 1.0
	}

	cachedDPIScale = scale
	return scale
}

// GetPhysicalScreenSize returns the primary screen size in capture pixels.
func GetPhysicalScreenSize() (width, height int) {
	w, h := robotgo.GetScreenSize()
	scaleX, scaleY := getCoordinateScale()
	return ScaleInt(w, scaleX), ScaleInt(h, scaleY)
}

func getCoordinateScale() (float64, float64) {
	coordScaleMu.Lock()
	defer coordScaleMu.Unlock()

	if coordsDetected {
		return cachedScaleX, cachedScaleY
	}

	cachedScaleX, cachedScaleY = detectCoordinateScale()
	coordsDetected = true

	detectLogOnce.Do(func() {
		rw, rh := robotgo.GetScreenSize()
		logger.Debug("coords: DPI=%.0f%% robotgo_screen=%dx%d coordScale=%.3f",
			GetDPIScale()*100, rw, rh, cachedScaleX)
	})

	return cachedScaleX, cachedScaleY
}

func detectCoordinateScale() (float64, float64) {
	reportedW, reportedH := robotgo.GetScreenSize()
	if reportedW <= 0 || reportedH <= 0 {
		return 1.0, 1.0
	}

	img, err := robotgo.CaptureImg()
	if err != nil || img == nil {
		// Capture failed; the DPI scale is the best remaining guess.
		s := GetDPIScale()
		return s, s
	}

	captureW := img.Bounds().Dx()
	captureH := img.Bounds().Dy()
	if captureW <= 0 || captureH <= 0 {
		return 1.0, 1.0
	}

	// Capture larger than GetScreenSize means GetScreenSize reports
	// logical pixels and robotgo.Move expects logical coordinates. Equal
	// sizes mean both live in the same space and no scaling is needed.
	return normalizeScale(float64(captureW) / float64(reportedW)),
		normalizeScale(float64(captureH) / float64(reportedH))
}

func normalizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	if v < 0.5 || v > 4.0 {
		return 1.0
	}
	if math.Abs(v-1.0) < 0.05 {
		return 1.0
	}
	return v
}

// ResetCoordinateScaleCache clears the detected scale, forcing re-detection.
func ResetCoordinateScaleCache() {
	coordScaleMu.Lock()
	defer coordScaleMu.Unlock()
	cachedScaleX = 0
	cachedScaleY = 0
	coordsDetected = false
	cachedDPIScale = 0
}

// NormalizePointForInput converts capture coordinates to robotgo input
// coordinates.
func NormalizePointForInput(x, y int) (int, int) {
	scaleX, scaleY := getCoordinateScale()
	if scaleX <= 0 {
		scaleX = 1.0
	}
	if scaleY <= 0 {
		scaleY = 1.0
	}
	return ScaleInt(x, 1.0/scaleX), ScaleInt(y, 1.0/scaleY)
}

// NormalizePointForScreen converts robotgo input coordinates to capture
// coordinates.
func NormalizePointForScreen(x, y int) (int, int) {
	scaleX, scaleY := getCoordinateScale()
	return ScaleInt(x, scaleX), ScaleInt(y, scaleY)
}

// NormalizeRegionForInput converts a capture-space region to input space.
func NormalizeRegionForInput(x, y, width, height int) (int, int, int, int) {
	scaleX, scaleY := getCoordinateScale()
	if scaleX <= 0 {
		scaleX = 1.0
	}
	if scaleY <= 0 {
		scaleY = 1.0
	}

	nx := ScaleInt(x, 1.0/scaleX)
	ny := ScaleInt(y, 1.0/scaleY)
	nw := ScaleInt(width, 1.0/scaleX)
	nh := ScaleInt(height, 1.0/scaleY)

	if width > 0 && nw < 1 {
		nw = 1
	}
	if height > 0 && nh < 1 {
		nh = 1
	}

	return nx, ny, nw, nh
}

// ScaleInt scales an integer by factor, rounding to nearest.
func ScaleInt(value int, factor float64) int {
	if factor <= 0 {
		return value
	}
	return int(math.Round(float64(value) * factor))
}
