package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCamera(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 3})

	if cam == nil {
		t.Fatal("NewCamera returned nil")
	}

	if cam.Yaw != -90 {
		t.Errorf("Expected yaw -90, got %f", cam.Yaw)
	}

	if cam.Fov != 60 {
		t.Errorf("Expected fov 60, got %f", cam.Fov)
	}

	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Camera should look down -Z, front=%v", cam.Front)
	}

	if !cam.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("Right should be +X, got %v", cam.Right)
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 5})

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}

	// The camera position maps to the view space origin.
	origin := view.Mul4x1(cam.Position.Vec4(1)).Vec3()
	if origin.Len() > 1e-4 {
		t.Errorf("Camera position should map to origin, got %v", origin)
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{})

	proj := cam.GetProjectionMatrix(800.0 / 600.0)

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}

	cam.SetFov(10)
	narrow := cam.GetProjectionMatrix(800.0 / 600.0)
	if narrow.At(1, 1) <= proj.At(1, 1) {
		t.Error("Smaller field of view should magnify")
	}

	square := cam.GetProjectionMatrix(0)
	if square.At(0, 0) != square.At(1, 1) {
		t.Error("Non-positive aspect should fall back to square")
	}
}

func TestCameraProcessKeyboard(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 0})

	cam.ProcessKeyboard(Forward, 1)
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, -2.5}, 1e-5) {
		t.Errorf("Forward moved to %v", cam.Position)
	}

	cam.ProcessKeyboard(Backward, 1)
	cam.ProcessKeyboard(Right, 2)
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{5, 0, 0}, 1e-5) {
		t.Errorf("Right moved to %v", cam.Position)
	}

	cam.ProcessKeyboard(Left, 2)
	cam.ProcessKeyboard(Boost, 1)
	want := float32(-2.5 * DefaultBoostFactor)
	if math.Abs(float64(cam.Position.Z()-want)) > 1e-4 {
		t.Errorf("Boost should travel %f along front, got %v", want, cam.Position)
	}
}

func TestCameraPitchConstrained(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{})

	cam.ProcessMouseMovement(0, 10000, true)
	if cam.Pitch != 89 {
		t.Errorf("Pitch should clamp at 89, got %f", cam.Pitch)
	}

	cam.ProcessMouseMovement(0, -100000, true)
	if cam.Pitch != -89 {
		t.Errorf("Pitch should clamp at -89, got %f", cam.Pitch)
	}

	cam.ProcessMouseMovement(0, -100000, false)
	if cam.Pitch >= -89 {
		t.Errorf("Unconstrained pitch should pass -89, got %f", cam.Pitch)
	}
}

func TestCameraUpdateVectors(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{})
	cam.Yaw = 30
	cam.Pitch = 45

	cam.updateCameraVectors()

	frontLen := cam.Front.Len()
	if math.Abs(float64(frontLen)-1.0) > 0.01 {
		t.Errorf("Front vector should be normalized, length=%f", frontLen)
	}

	if math.Abs(float64(cam.Front.Dot(cam.Right))) > 1e-5 || math.Abs(float64(cam.Front.Dot(cam.Up))) > 1e-5 {
		t.Error("Camera basis should be orthogonal")
	}
}

func TestCameraInvertMouse(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{})
	cam.InvertMouse = true

	cam.ProcessMouseMovement(0, 10, true)
	if cam.Pitch != -1 {
		t.Errorf("Inverted mouse should lower pitch, got %f", cam.Pitch)
	}
}
