package core

import (
	"strings"

	"github.com/devblok/vkbind/native"
)

// Feature names one optional device feature
type Feature int

// Device features, in native declaration order
const (
	RobustBufferAccess Feature = iota
	FullDrawIndexUint32
	ImageCubeArray
	IndependentBlend
	GeometryShader
	TessellationShader
	SampleRateShading
	DualSrcBlend
	LogicOp
	MultiDrawIndirect
	DrawIndirectFirstInstance
	DepthClamp
	DepthBiasClamp
	FillModeNonSolid
	DepthBounds
	WideLines
	LargePoints
	AlphaToOne
	MultiViewport
	SamplerAnisotropy
	TextureCompressionETC2
	TextureCompressionASTCLDR
	TextureCompressionBC
	OcclusionQueryPrecise
	PipelineStatisticsQuery
	VertexPipelineStoresAndAtomics
	FragmentStoresAndAtomics
	ShaderTessellationAndGeometryPointSize
	ShaderImageGatherExtended
	ShaderStorageImageExtendedFormats
	ShaderStorageImageMultisample
	ShaderStorageImageReadWithoutFormat
	ShaderStorageImageWriteWithoutFormat
	ShaderUniformBufferArrayDynamicIndexing
	ShaderSampledImageArrayDynamicIndexing
	ShaderStorageBufferArrayDynamicIndexing
	ShaderStorageImageArrayDynamicIndexing
	ShaderClipDistance
	ShaderCullDistance
	ShaderFloat64
	ShaderInt64
	ShaderInt16
	ShaderResourceResidency
	ShaderResourceMinLod
	SparseBinding
	SparseResidencyBuffer
	SparseResidencyImage2D
	SparseResidencyImage3D
	SparseResidency2Samples
	SparseResidency4Samples
	SparseResidency8Samples
	SparseResidency16Samples
	SparseResidencyAliased
	VariableMultisampleRate
	InheritedQueries

	featureCount
)

var _ [featureCount - native.FeatureCount]struct{}
var _ [native.FeatureCount - featureCount]struct{}

var featureNames = [featureCount]string{
	"robustBufferAccess",
	"fullDrawIndexUint32",
	"imageCubeArray",
	"independentBlend",
	"geometryShader",
	"tessellationShader",
	"sampleRateShading",
	"dualSrcBlend",
	"logicOp",
	"multiDrawIndirect",
	"drawIndirectFirstInstance",
	"depthClamp",
	"depthBiasClamp",
	"fillModeNonSolid",
	"depthBounds",
	"wideLines",
	"largePoints",
	"alphaToOne",
	"multiViewport",
	"samplerAnisotropy",
	"textureCompressionETC2",
	"textureCompressionASTC_LDR",
	"textureCompressionBC",
	"occlusionQueryPrecise",
	"pipelineStatisticsQuery",
	"vertexPipelineStoresAndAtomics",
	"fragmentStoresAndAtomics",
	"shaderTessellationAndGeometryPointSize",
	"shaderImageGatherExtended",
	"shaderStorageImageExtendedFormats",
	"shaderStorageImageMultisample",
	"shaderStorageImageReadWithoutFormat",
	"shaderStorageImageWriteWithoutFormat",
	"shaderUniformBufferArrayDynamicIndexing",
	"shaderSampledImageArrayDynamicIndexing",
	"shaderStorageBufferArrayDynamicIndexing",
	"shaderStorageImageArrayDynamicIndexing",
	"shaderClipDistance",
	"shaderCullDistance",
	"shaderFloat64",
	"shaderInt64",
	"shaderInt16",
	"shaderResourceResidency",
	"shaderResourceMinLod",
	"sparseBinding",
	"sparseResidencyBuffer",
	"sparseResidencyImage2D",
	"sparseResidencyImage3D",
	"sparseResidency2Samples",
	"sparseResidency4Samples",
	"sparseResidency8Samples",
	"sparseResidency16Samples",
	"sparseResidencyAliased",
	"variableMultisampleRate",
	"inheritedQueries",
}

func (f Feature) String() string {
	if f < 0 || f >= featureCount {
		return "unknownFeature"
	}
	return featureNames[f]
}

// ParseFeature looks a feature up by its native member name, case insensitive
func ParseFeature(name string) (Feature, error) {
	for f, n := range featureNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Feature(f), nil
		}
	}
	return 0, generalError("core.ParseFeature", "unknown feature %q", name)
}

// Features is a set of device features
type Features uint64

// NewFeatures builds a set from a list
func NewFeatures(fs ...Feature) Features {
	var s Features
	for _, f := range fs {
		s = s.With(f)
	}
	return s
}

// With returns the set including f
func (s Features) With(f Feature) Features {
	if f < 0 || f >= featureCount {
		return s
	}
	return s | 1<<uint(f)
}

// Has reports membership
func (s Features) Has(f Feature) bool {
	return f >= 0 && f < featureCount && s&(1<<uint(f)) != 0
}

// List returns the members in declaration order
func (s Features) List() []Feature {
	var fs []Feature
	for f := Feature(0); f < featureCount; f++ {
		if s.Has(f) {
			fs = append(fs, f)
		}
	}
	return fs
}

// Names returns the member names in declaration order
func (s Features) Names() []string {
	var names []string
	for _, f := range s.List() {
		names = append(names, f.String())
	}
	return names
}

// Missing returns the members of s that supported lacks
func (s Features) Missing(supported Features) []Feature {
	return (s &^ supported).List()
}

func convertFeatures(raw *native.PhysicalDeviceFeatures) Features {
	var s Features
	for i, b := range raw {
		if b != native.False {
			s = s.With(Feature(i))
		}
	}
	return s
}

func (s Features) native() native.PhysicalDeviceFeatures {
	var raw native.PhysicalDeviceFeatures
	for i := range raw {
		raw[i] = native.Bool(s.Has(Feature(i)))
	}
	return raw
}
