package timing

// Timing holds frame timing state. The application owns exactly one instance
// and advances it once per frame before any layer phase runs.
type Timing struct {
	deltaTime         float32
	unscaledDeltaTime float32
	timeScale         float32

	timeSinceAppLoad           float32
	unscaledTimeSinceAppLoad   float32
	timeSinceSceneLoad         float32
	unscaledTimeSinceSceneLoad float32

	frameCount uint64
}

func New() *Timing {
	return &Timing{timeScale: 1}
}

func (t *Timing) DeltaTime() float32                  { return t.deltaTime }
func (t *Timing) UnscaledDeltaTime() float32          { return t.unscaledDeltaTime }
func (t *Timing) TimeScale() float32                  { return t.timeScale }
func (t *Timing) TimeSinceAppLoad() float32           { return t.timeSinceAppLoad }
func (t *Timing) UnscaledTimeSinceAppLoad() float32   { return t.unscaledTimeSinceAppLoad }
func (t *Timing) TimeSinceSceneLoad() float32         { return t.timeSinceSceneLoad }
func (t *Timing) UnscaledTimeSinceSceneLoad() float32 { return t.unscaledTimeSinceSceneLoad }
func (t *Timing) FrameCount() uint64                  { return t.frameCount }

// SetTimeScale changes the scale applied from the next Advance onward.
// Negative scales clamp to zero.
func (t *Timing) SetTimeScale(scale float32) {
	if scale < 0 {
		scale = 0
	}
	t.timeScale = scale
}

// Advance records one frame of wall-clock time. Negative deltas (clock
// adjustments) are treated as zero so elapsed counters never decrease.
func (t *Timing) Advance(unscaledDt float32) {
	if unscaledDt < 0 {
		unscaledDt = 0
	}
	scaled := unscaledDt * t.timeScale

	t.unscaledDeltaTime = unscaledDt
	t.deltaTime = scaled
	t.timeSinceAppLoad += scaled
	t.unscaledTimeSinceAppLoad += unscaledDt
	t.timeSinceSceneLoad += scaled
	t.unscaledTimeSinceSceneLoad += unscaledDt
	t.frameCount++
}

// ResetSceneTimers zeroes the since-scene-load counters. Called when a new
// scene becomes current.
func (t *Timing) ResetSceneTimers() {
	t.timeSinceSceneLoad = 0
	t.unscaledTimeSinceSceneLoad = 0
}
