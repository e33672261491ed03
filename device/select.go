package device

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkbind/core"
)

// ErrNoSuitableAdapter is returned when no adapter meets the requirements
var ErrNoSuitableAdapter = errors.New("no suitable adapter")

// Requirements constrain adapter selection
type Requirements struct {
	Extensions []string
	Features   core.Features
	// Surface, when set, requires a queue family able to present to it
	Surface *core.Surface
}

// Choice is the selected adapter and the families to request queues from
type Choice struct {
	Adapter        *core.Adapter
	Info           Info
	GraphicsFamily uint32
	PresentFamily  uint32
}

// QueueRequests asks for one queue from each distinct family of the choice
func (c Choice) QueueRequests() []core.QueueRequest {
	requests := []core.QueueRequest{{FamilyIndex: c.GraphicsFamily, Priorities: []float32{1}}}
	if c.PresentFamily != c.GraphicsFamily {
		requests = append(requests, core.QueueRequest{FamilyIndex: c.PresentFamily, Priorities: []float32{1}})
	}
	return requests
}

var typeRank = map[core.DeviceType]int{
	core.DeviceTypeDiscreteGPU:   4,
	core.DeviceTypeIntegratedGPU: 3,
	core.DeviceTypeVirtualGPU:    2,
	core.DeviceTypeCPU:           1,
}

// Select picks the adapter meeting req with the best device type, breaking
// ties by total memory and then by enumeration order
func Select(adapters []*core.Adapter, req Requirements) (Choice, error) {
	var (
		best  Choice
		found bool
	)
	for _, a := range adapters {
		choice, ok, err := evaluate(a, req)
		if err != nil {
			return Choice{}, err
		}
		if !ok {
			continue
		}
		if !found || better(choice.Info, best.Info) {
			best, found = choice, true
		}
	}
	if !found {
		return Choice{}, ErrNoSuitableAdapter
	}
	logrus.WithFields(logrus.Fields{
		"name":     best.Info.Name,
		"graphics": best.GraphicsFamily,
		"present":  best.PresentFamily,
	}).Debug("adapter selected")
	return best, nil
}

func better(a, b Info) bool {
	if typeRank[a.Type] != typeRank[b.Type] {
		return typeRank[a.Type] > typeRank[b.Type]
	}
	return a.Memory > b.Memory
}

func evaluate(a *core.Adapter, req Requirements) (Choice, bool, error) {
	info := Describe(a)
	if info.Invalid {
		return Choice{}, false, nil
	}
	for _, ext := range req.Extensions {
		if !info.HasExtension(ext) {
			return Choice{}, false, nil
		}
	}
	if len(req.Features.Missing(info.Features)) > 0 {
		return Choice{}, false, nil
	}
	graphics, ok := info.GraphicsFamily()
	if !ok {
		return Choice{}, false, nil
	}

	choice := Choice{Adapter: a, Info: info, GraphicsFamily: graphics, PresentFamily: graphics}
	if req.Surface == nil {
		return choice, true, nil
	}
	present, ok, err := presentFamily(a, info, graphics, req.Surface)
	if err != nil || !ok {
		return Choice{}, false, err
	}
	choice.PresentFamily = present
	return choice, true, nil
}

// presentFamily prefers the graphics family when it can present
func presentFamily(a *core.Adapter, info Info, graphics uint32, s *core.Surface) (uint32, bool, error) {
	supported, err := a.SurfaceSupport(graphics, s)
	if err != nil {
		return 0, false, errors.Wrap(err, "surface support")
	}
	if supported {
		return graphics, true, nil
	}
	for idx := range info.QueueFamilies {
		if uint32(idx) == graphics {
			continue
		}
		supported, err := a.SurfaceSupport(uint32(idx), s)
		if err != nil {
			return 0, false, errors.Wrap(err, "surface support")
		}
		if supported {
			return uint32(idx), true, nil
		}
	}
	return 0, false, nil
}
