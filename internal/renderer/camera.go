// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraMovement is one keyboard-driven displacement.
type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
	// Boost is extra forward travel applied on top of Forward.
	Boost
)

// Camera defaults.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultFov         float32 = 60.0
	DefaultBoostFactor float32 = 2.5
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position mgl32.Vec3 // Camera position in world space
	Front    mgl32.Vec3 // Forward direction vector
	Up       mgl32.Vec3 // Up direction vector
	Right    mgl32.Vec3 // Right direction vector
	Pitch    float32    // Pitch angle (vertical rotation)
	Yaw      float32    // Yaw angle (horizontal rotation)

	// COLD DATA - Configuration, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Speed       float32    // Movement speed in units per second
	BoostFactor float32    // Multiplier of Speed for Boost travel
	Sensitivity float32    // Mouse sensitivity
	Fov         float32    // Field of view in degrees
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	InvertMouse bool       // Invert mouse Y axis
}

func NewCamera(position mgl32.Vec3) *Camera {
	camera := Camera{
		Position:    position,
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Pitch:       DefaultPitch,
		Yaw:         DefaultYaw,
		Speed:       DefaultSpeed,
		BoostFactor: DefaultBoostFactor,
		Sensitivity: DefaultSensitivity,
		Fov:         DefaultFov,
		Near:        0.1,
		Far:         100.0,
	}
	camera.updateCameraVectors()
	return &camera
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// GetProjectionMatrix is a perspective projection for the current field of
// view. A non-positive aspect ratio is treated as square.
func (c *Camera) GetProjectionMatrix(aspectRatio float32) mgl32.Mat4 {
	if aspectRatio <= 0 {
		aspectRatio = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspectRatio, c.Near, c.Far)
}

func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	velocity := c.Speed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Boost:
		c.Position = c.Position.Add(c.Front.Mul(velocity * c.BoostFactor))
	}
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	c.Yaw += xoffset

	if c.InvertMouse {
		c.Pitch -= yoffset
	} else {
		c.Pitch += yoffset
	}
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0) // Prevent extreme pitch values
	}
	c.updateCameraVectors()
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		float32(math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
