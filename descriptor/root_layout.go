package descriptor

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
)

type RootParameterType int8

const (
	RootParameterDescriptorTable RootParameterType = iota
	RootParameterConstants
	RootParameterCBV
	RootParameterSRV
	RootParameterUAV
)

var rootParameterTypeMapping = map[RootParameterType]string{
	RootParameterDescriptorTable: "RootParameterDescriptorTable",
	RootParameterConstants:       "RootParameterConstants",
	RootParameterCBV:             "RootParameterCBV",
	RootParameterSRV:             "RootParameterSRV",
	RootParameterUAV:             "RootParameterUAV",
}

func (t RootParameterType) String() string {
	return rootParameterTypeMapping[t]
}

// DescriptorRange is a run of descriptors of one kind within a descriptor table
type DescriptorRange struct {
	Kind           hal.HeapKind
	NumDescriptors int
}

type RootParameter struct {
	Type RootParameterType
	// Ranges is only used by descriptor tables
	Ranges []DescriptorRange
}

// DescriptorTable is a convenience constructor for a descriptor-table root parameter
func DescriptorTable(ranges ...DescriptorRange) RootParameter {
	return RootParameter{
		Type:   RootParameterDescriptorTable,
		Ranges: ranges,
	}
}

// RootLayout is a root signature description that knows which root parameters are descriptor
// tables and how many descriptors each holds. It implements hal.RootSignature.
type RootLayout struct {
	parameters     []RootParameter
	numDescriptors []int
	tableMasks     [hal.HeapKindCount]uint32
}

var _ hal.RootSignature = &RootLayout{}

func NewRootLayout(parameters ...RootParameter) (*RootLayout, error) {
	if len(parameters) > MaxDescriptorTables {
		return nil, errors.Wrapf(gpuutils.RootIndexOutOfRangeError, "root signature has %d parameters", len(parameters))
	}

	layout := &RootLayout{
		parameters:     make([]RootParameter, len(parameters)),
		numDescriptors: make([]int, len(parameters)),
	}

	for rootIndex, parameter := range parameters {
		layout.parameters[rootIndex] = RootParameter{
			Type:   parameter.Type,
			Ranges: append([]DescriptorRange(nil), parameter.Ranges...),
		}

		if parameter.Type != RootParameterDescriptorTable || len(parameter.Ranges) == 0 {
			continue
		}

		kind := parameter.Ranges[0].Kind
		if !kind.ShaderVisible() {
			return nil, errors.Newf("root parameter %d: descriptor tables cannot hold %s descriptors", rootIndex, kind)
		}

		count := 0
		for _, descriptorRange := range parameter.Ranges {
			if descriptorRange.Kind != kind {
				return nil, errors.Newf("root parameter %d: descriptor table mixes %s and %s ranges", rootIndex, kind, descriptorRange.Kind)
			}
			if descriptorRange.NumDescriptors < 0 {
				return nil, errors.Newf("root parameter %d: descriptor range has %d descriptors", rootIndex, descriptorRange.NumDescriptors)
			}
			count += descriptorRange.NumDescriptors
		}

		layout.numDescriptors[rootIndex] = count
		layout.tableMasks[kind] |= 1 << rootIndex
	}

	return layout, nil
}

func (l *RootLayout) NumParameters() int { return len(l.parameters) }

func (l *RootLayout) Parameter(rootIndex int) RootParameter { return l.parameters[rootIndex] }

func (l *RootLayout) DescriptorTableMask(kind hal.HeapKind) uint32 {
	if kind < 0 || kind >= hal.HeapKindCount {
		return 0
	}
	return l.tableMasks[kind]
}

func (l *RootLayout) NumDescriptors(rootIndex int) int {
	if rootIndex < 0 || rootIndex >= len(l.numDescriptors) {
		return 0
	}
	return l.numDescriptors[rootIndex]
}
