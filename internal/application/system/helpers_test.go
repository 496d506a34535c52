package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/younwookim/gravshift/internal/domain/entity"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
	"github.com/younwookim/gravshift/internal/infrastructure/logger"
)

// groundStub reports ground at a fixed distance whenever grounded is set
type groundStub struct {
	grounded bool
	casts    int
}

func (g *groundStub) Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, bool) {
	g.casts++
	if !g.grounded {
		return 0, false
	}
	return 0.2, true
}

// fixedCamera looks down +Z with +X to the right
type fixedCamera struct {
	forward, right mgl64.Vec3
}

func (c fixedCamera) Forward() mgl64.Vec3 { return c.forward }
func (c fixedCamera) Right() mgl64.Vec3   { return c.right }

var worldCamera = fixedCamera{forward: mgl64.Vec3{0, 0, 1}, right: mgl64.Vec3{1, 0, 0}}

// flowSpy counts loss notifications
type flowSpy struct {
	timeouts int
}

func (f *flowSpy) OnFallTimeout() { f.timeouts++ }

func createTestConfig() *config.LocomotionConfig {
	return config.DefaultLocomotionConfig()
}

func createTestBody() *entity.Body {
	return entity.NewBody(mgl64.Vec3{1.5, 1, 1.5}, mgl64.Vec3{0.3, 0.9, 0.3})
}

type testRig struct {
	char   *Character
	body   *entity.Body
	ground *groundStub
	flow   *flowSpy
}

func createTestRig(grounded bool) *testRig {
	body := createTestBody()
	ground := &groundStub{grounded: grounded}
	flow := &flowSpy{}
	char := NewCharacter(createTestConfig(), body, ground, worldCamera, flow, logger.Discard())
	return &testRig{char: char, body: body, ground: ground, flow: flow}
}

func assertVecInDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}
