// internal/level/schedule.go
package level

import "sort"

// Spawn is a planned release: which enemy type, how many steps into the wave.
type Spawn struct {
	Step  int
	Enemy string
}

// SubWave is one segment of a composed wave. A segment with Count 0 is a pause.
// Enemies cycle over the interval points; a Group, when set, is emitted at every point instead.
type SubWave struct {
	Steps   int
	Count   int
	Enemies []string
	Group   []Spawn
}

// Intervals spreads count spawns evenly over steps: the i-th lands at i*steps/count.
func Intervals(steps, count int) []int {
	if count <= 0 {
		return nil
	}
	if steps < 0 {
		steps = 0
	}
	out := make([]int, count)
	for i := range out {
		out[i] = i * steps / count
	}
	return out
}

// SubWaves lays segments end to end. Each segment starts after the sum of the
// previous segments' durations, pauses included.
func SubWaves(segments []SubWave) []Spawn {
	var out []Spawn
	offset := 0
	for _, seg := range segments {
		for i, step := range Intervals(seg.Steps, seg.Count) {
			at := offset + step
			if len(seg.Group) > 0 {
				for _, g := range seg.Group {
					out = append(out, Spawn{Step: at + g.Step, Enemy: g.Enemy})
				}
				continue
			}
			if len(seg.Enemies) > 0 {
				out = append(out, Spawn{Step: at, Enemy: seg.Enemies[i%len(seg.Enemies)]})
			}
		}
		if seg.Steps > 0 {
			offset += seg.Steps
		}
	}
	return out
}

// sortSpawns orders by step; ties keep insertion order.
func sortSpawns(spawns []Spawn) {
	sort.SliceStable(spawns, func(i, j int) bool {
		return spawns[i].Step < spawns[j].Step
	})
}
