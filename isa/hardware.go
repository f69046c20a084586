package isa

import (
	"math"
	"strconv"
)

// ConnectivityKind constrains which target pairs a native multi-qubit gate
// may act on.
type ConnectivityKind int

const (
	AllToAll ConnectivityKind = iota
	NearestNeighborChain
	NearestNeighborGrid
)

// SiteDescriptor places a physical site in (x, y, z) with a zone tag used
// for per-region parallelism limits and blockade overrides.
type SiteDescriptor struct {
	ID     int
	X, Y, Z float64
	ZoneID int
}

// NativeGate declares a supported (name, arity) pair along with its
// duration, optional parameter bounds, and connectivity constraint.
type NativeGate struct {
	Name         string
	Arity        int
	DurationNs   float64
	AngleMin     float64
	AngleMax     float64
	Connectivity ConnectivityKind
}

// InteractionPair is one allowed site-id pair for a given gate.
type InteractionPair struct {
	SiteA, SiteB int
}

// InteractionGraph is an optional per-gate allow-list of site pairs.
type InteractionGraph struct {
	GateName    string
	AllowedPairs []InteractionPair
}

func (g InteractionGraph) Allowed(a, b int) bool {
	for _, p := range g.AllowedPairs {
		if (p.SiteA == a && p.SiteB == b) || (p.SiteA == b && p.SiteB == a) {
			return true
		}
	}
	return false
}

// BlockadeZoneOverride replaces the effective blockade radius for qubits in
// ZoneID, when positive.
type BlockadeZoneOverride struct {
	ZoneID int
	Radius float64
}

// BlockadeModel describes an anisotropic blockade radius with optional
// per-zone overrides, layered on top of HardwareConfig.BlockadeRadius.
type BlockadeModel struct {
	Radius               float64
	RadiusX, RadiusY, RadiusZ float64
	ZoneOverrides        []BlockadeZoneOverride
}

func (m BlockadeModel) zoneOverrideRadius(zone int) float64 {
	for _, o := range m.ZoneOverrides {
		if o.ZoneID == zone && o.Radius > 0 {
			return o.Radius
		}
	}
	return 0
}

// TimingLimits bounds waits, measurement cooldown/duration, and parallelism.
// A zero field means unlimited/unused.
type TimingLimits struct {
	MinWaitNs               float64
	MaxWaitNs               float64
	MaxParallelSingleQubit  int
	MaxParallelTwoQubit     int
	MaxParallelPerZone      int
	MeasurementCooldownNs   float64
	MeasurementDurationNs   float64
}

// PulseLimits bounds Pulse instruction parameters.
type PulseLimits struct {
	DetuningMin, DetuningMax       float64
	DurationMinNs, DurationMaxNs   float64
	MaxOverlappingPulses           int
}

// TransportEdge is consumed by validators only (see
// original_source/src/service/job_validation.cpp); the core engine does not
// reference it. Of MoveLimits, the engine's MoveAtom checks
// MaxTotalDisplacementPerAtom against the displacement of each single move
// and MaxMovesPerShot against the shot's move count; the other fields are
// not referenced by the engine.
type TransportEdge struct {
	SrcSiteID, DstSiteID int
	Distance             float64
	DurationNs           float64
}

type MoveLimits struct {
	MaxTotalDisplacementPerAtom      float64
	MaxMovesPerAtom                  int
	MaxMovesPerShot                  int
	MaxMovesPerConfigurationChange   int
	RearrangementWindowNs            float64
}

// HardwareConfig is the value-typed, cheap-to-clone description of the
// target device. Positions/coordinates describe geometry in one of three
// increasingly rich forms (legacy 1D positions, multi-D coordinates, or
// site descriptors); callers may populate whichever form their hardware
// generation understands and leave the others empty.
type HardwareConfig struct {
	Positions       []float64
	Coordinates     [][]float64
	BlockadeRadius  float64

	SiteIDs           []int
	InteractionGraphs []InteractionGraph
	BlockadeModel     BlockadeModel

	Sites        []SiteDescriptor
	NativeGates  []NativeGate
	TimingLimits TimingLimits
	PulseLimits  PulseLimits

	TransportEdges []TransportEdge
	MoveLimits     MoveLimits
}

func (hw *HardwareConfig) FindNativeGate(name string, arity int) *NativeGate {
	for i := range hw.NativeGates {
		g := &hw.NativeGates[i]
		if g.Name == name && g.Arity == arity {
			return g
		}
	}
	return nil
}

func (hw *HardwareConfig) FindInteractionGraph(gateName string) *InteractionGraph {
	for i := range hw.InteractionGraphs {
		if hw.InteractionGraphs[i].GateName == gateName {
			return &hw.InteractionGraphs[i]
		}
	}
	return nil
}

// SiteIndex maps a site id to its position within HardwareConfig.Sites.
type SiteIndex map[int]int

func BuildSiteIndex(hw *HardwareConfig) SiteIndex {
	idx := make(SiteIndex, len(hw.Sites))
	for i, s := range hw.Sites {
		idx[s.ID] = i
	}
	return idx
}

func (hw *HardwareConfig) siteDescriptorForSlot(idx SiteIndex, slot int) *SiteDescriptor {
	if slot < 0 || slot >= len(hw.SiteIDs) {
		return nil
	}
	siteID := hw.SiteIDs[slot]
	pos, ok := idx[siteID]
	if !ok || pos >= len(hw.Sites) {
		return nil
	}
	return &hw.Sites[pos]
}

func (hw *HardwareConfig) siteDescriptorByID(idx SiteIndex, siteID int) *SiteDescriptor {
	pos, ok := idx[siteID]
	if !ok || pos >= len(hw.Sites) {
		return nil
	}
	return &hw.Sites[pos]
}

// ZoneForSlot returns the zone a logical qubit slot belongs to, or 0 when
// no site descriptor is available for it.
func (hw *HardwareConfig) ZoneForSlot(idx SiteIndex, slot int) int {
	if s := hw.siteDescriptorForSlot(idx, slot); s != nil {
		return s.ZoneID
	}
	return 0
}

func (hw *HardwareConfig) DistanceBetweenSites(idx SiteIndex, a, b int) float64 {
	sa := hw.siteDescriptorByID(idx, a)
	sb := hw.siteDescriptorByID(idx, b)
	if sa == nil || sb == nil {
		return math.Inf(1)
	}
	dx, dy, dz := sa.X-sb.X, sa.Y-sb.Y, sa.Z-sb.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SpatialDelta is the per-axis separation between two qubit slots, computed
// with the richest geometry available.
type SpatialDelta struct {
	DX, DY, DZ float64
	Distance   float64
}

func coordAt(row []float64, offset int) float64 {
	if offset < len(row) {
		return row[offset]
	}
	return 0
}

// ComputeSpatialDelta prefers multi-D coordinates, then site descriptors,
// then legacy 1D positions, in that order — matching blockade enforcement's
// documented geometry preference.
func (hw *HardwareConfig) ComputeSpatialDelta(idx SiteIndex, q0, q1 int) SpatialDelta {
	if q0 < 0 || q1 < 0 {
		return SpatialDelta{Distance: math.Inf(1)}
	}
	if q0 < len(hw.Coordinates) && q1 < len(hw.Coordinates) {
		lhs, rhs := hw.Coordinates[q0], hw.Coordinates[q1]
		dx := coordAt(lhs, 0) - coordAt(rhs, 0)
		dy := coordAt(lhs, 1) - coordAt(rhs, 1)
		dz := coordAt(lhs, 2) - coordAt(rhs, 2)
		return SpatialDelta{DX: dx, DY: dy, DZ: dz, Distance: math.Sqrt(dx*dx + dy*dy + dz*dz)}
	}
	sa := hw.siteDescriptorForSlot(idx, q0)
	sb := hw.siteDescriptorForSlot(idx, q1)
	if sa != nil && sb != nil {
		dx, dy, dz := sa.X-sb.X, sa.Y-sb.Y, sa.Z-sb.Z
		return SpatialDelta{DX: dx, DY: dy, DZ: dz, Distance: math.Sqrt(dx*dx + dy*dy + dz*dz)}
	}
	if q0 < len(hw.Positions) && q1 < len(hw.Positions) {
		dx := hw.Positions[q0] - hw.Positions[q1]
		return SpatialDelta{DX: dx, Distance: math.Abs(dx)}
	}
	return SpatialDelta{Distance: math.Inf(1)}
}

// BlockadeViolationReason returns a non-empty, human-readable reason when a
// two-qubit gate between q0 and q1 violates the effective blockade, or ""
// when it is legal. Anisotropic per-axis limits are checked first; the
// effective radius (zone override, else the blockade model's radius, else
// the global scalar) is checked second. A zero effective radius means no
// radius check applies. When no geometry form covers both qubits, the
// function reports insufficient geometry whatever the radius.
func (hw *HardwareConfig) BlockadeViolationReason(idx SiteIndex, q0, q1 int) string {
	delta := hw.ComputeSpatialDelta(idx, q0, q1)
	if math.IsInf(delta.Distance, 1) {
		return "insufficient geometry for blockade check"
	}
	model := hw.BlockadeModel
	if reason := axisLimit(model.RadiusX, math.Abs(delta.DX), "x"); reason != "" {
		return reason
	}
	if reason := axisLimit(model.RadiusY, math.Abs(delta.DY), "y"); reason != "" {
		return reason
	}
	if reason := axisLimit(model.RadiusZ, math.Abs(delta.DZ), "z"); reason != "" {
		return reason
	}

	effective := model.Radius
	if effective <= 0 {
		effective = hw.BlockadeRadius
	}
	zone := hw.ZoneForSlot(idx, q0)
	zoneRadius := model.zoneOverrideRadius(zone)
	if zoneRadius > 0 {
		effective = zoneRadius
	}
	if effective <= 0 {
		return ""
	}
	if delta.Distance > effective {
		if zoneRadius > 0 {
			return "zone " + strconv.Itoa(zone) + " blockade radius " + strconv.FormatFloat(zoneRadius, 'g', -1, 64)
		}
		return "blockade radius " + strconv.FormatFloat(effective, 'g', -1, 64)
	}
	return ""
}

func axisLimit(limit, deltaAxis float64, axis string) string {
	if limit > 0 && deltaAxis > limit {
		return "anisotropic blockade (" + axis + "-axis limit " + strconv.FormatFloat(limit, 'g', -1, 64) + ")"
	}
	return ""
}

// ConnectivityViolationReason checks a native gate's declared connectivity
// against its target list, returning a non-empty reason on violation.
// AllToAll always passes; NearestNeighborChain requires every target pair
// to be adjacent slot indices; NearestNeighborGrid requires site
// descriptors for every target and unit Manhattan distance between each
// pair.
func (hw *HardwareConfig) ConnectivityViolationReason(idx SiteIndex, gate *NativeGate, targets []int) string {
	switch gate.Connectivity {
	case NearestNeighborChain:
		for i := 0; i < len(targets); i++ {
			for j := i + 1; j < len(targets); j++ {
				if absInt(targets[i]-targets[j]) != 1 {
					return "gate " + gate.Name + " requires nearest-neighbor chain connectivity"
				}
			}
		}
		return ""
	case NearestNeighborGrid:
		for i := 0; i < len(targets); i++ {
			for j := i + 1; j < len(targets); j++ {
				sa := hw.siteDescriptorForSlot(idx, targets[i])
				sb := hw.siteDescriptorForSlot(idx, targets[j])
				if sa == nil || sb == nil {
					return "gate " + gate.Name + " requires nearest-neighbor grid connectivity"
				}
				manhattan := math.Abs(sa.X-sb.X) + math.Abs(sa.Y-sb.Y)
				if manhattan != 1 {
					return "gate " + gate.Name + " requires nearest-neighbor grid connectivity"
				}
			}
		}
		return ""
	default:
		return ""
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
