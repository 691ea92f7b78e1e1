package network

import (
	"math"
	"strings"

	"github.com/inventory-sim/inventory-sim/sim/distribution"
)

// DemandStream is one customer's demand for one product, served by one facility.
type DemandStream struct {
	Customer          string
	Product           string
	Facility          string
	Demand            distribution.Sampler
	InterArrival      distribution.Sampler
	ServiceWindowDays float64
}

// Key returns the facility-product that fulfills the stream.
func (d DemandStream) Key() Key {
	return Key{Facility: d.Facility, Product: d.Product}
}

// StockPolicy is the resolved inventory policy of a tracked facility-product.
type StockPolicy struct {
	Key              Key
	ReorderPoint     float64
	OrderUpTo        float64
	InitialInventory *float64
	HoldingCost      float64
	InboundCost      float64
	OutboundCost     float64
}

// ProductionPolicy is a resolved production record. Materials is nil when the
// product has no bill of materials.
type ProductionPolicy struct {
	Key       Key
	Kind      string
	DailyRate float64
	UnitCost  float64
	BOMID     string
	Materials []Material
}

// Lane is a resolved transportation lane.
type Lane struct {
	Origin           string
	Destination      string
	Mode             string
	UnitCost         float64
	FixedCost        float64
	Distance         float64
	LeadTime         distribution.Sampler
	LeadTimeUnitDays float64
	TimeUnit         string
	VehicleCapacity  float64
}

// SourcePolicy is a resolved replenishment record.
type SourcePolicy struct {
	Key       Key
	Source    Key
	Surcharge float64
	Lane      Lane
}

// FulfillmentRule controls how a facility releases customer orders.
type FulfillmentRule struct {
	ReviewPeriodDays int
	AllowPartial     bool
}

// Index is the read-only, fully-resolved view of an Input. It is built once per
// sweep and shared by every replication; nothing mutates it after NewIndex returns.
type Index struct {
	Input *Input

	Streams    []DemandStream
	Policies   []StockPolicy
	Production map[Key]*ProductionPolicy
	Sources    map[Key]*SourcePolicy

	policyByKey   map[Key]int
	fulfillment   map[string]FulfillmentRule
	facilityTypes map[string]string
	diag          Diagnostics
}

// NewIndex resolves every lookup of in, applying defaults where rows or fields
// are missing. Tracked keys are the inventory-policy keys in declaration order,
// followed by input-factor keys that have no inventory policy.
func NewIndex(in *Input) *Index {
	if in == nil {
		in = &Input{}
	}
	x := &Index{
		Input:         in,
		Production:    make(map[Key]*ProductionPolicy),
		Sources:       make(map[Key]*SourcePolicy),
		policyByKey:   make(map[Key]int),
		fulfillment:   make(map[string]FulfillmentRule),
		facilityTypes: make(map[string]string),
	}
	for _, f := range in.Facilities {
		x.facilityTypes[f.Name] = f.Type
	}

	warehousing := make(map[string]Warehousing)
	for _, w := range in.Warehousing {
		if _, ok := warehousing[w.Facility]; !ok {
			warehousing[w.Facility] = w
		}
	}
	for _, p := range in.InventoryPolicies {
		x.addPolicy(p, warehousing)
	}
	for _, f := range in.InputFactors {
		k := Key{Facility: f.Facility, Product: f.Product}
		if _, ok := x.policyByKey[k]; ok {
			continue
		}
		x.diag.Add(WarnUntrackedKey, k.String(), "input factor key has no inventory policy; tracking it from S")
		s, bigS := DefaultReorderPoint, DefaultOrderUpTo
		x.addPolicy(InventoryPolicy{Facility: f.Facility, Product: f.Product, Value1: &s, Value2: &bigS}, warehousing)
	}

	for _, of := range in.OrderFulfillment {
		if _, ok := x.fulfillment[of.Facility]; ok {
			continue
		}
		rule := FulfillmentRule{ReviewPeriodDays: DefaultReviewPeriodDays, AllowPartial: DefaultAllowPartial}
		if of.ReviewPeriodDays != nil && *of.ReviewPeriodDays >= 1 {
			rule.ReviewPeriodDays = int(math.Round(*of.ReviewPeriodDays))
		}
		if of.AllowPartial != nil {
			rule.AllowPartial = *of.AllowPartial
		}
		x.fulfillment[of.Facility] = rule
	}

	x.resolveStreams()
	x.resolveProduction()
	x.resolveSources()
	return x
}

func (x *Index) addPolicy(p InventoryPolicy, warehousing map[string]Warehousing) {
	k := Key{Facility: p.Facility, Product: p.Product}
	if _, ok := x.policyByKey[k]; ok {
		return
	}
	sp := StockPolicy{
		Key:              k,
		ReorderPoint:     DefaultReorderPoint,
		OrderUpTo:        DefaultOrderUpTo,
		InitialInventory: p.InitialInventory,
		HoldingCost:      DefaultHoldingCost,
		InboundCost:      DefaultInboundCost,
		OutboundCost:     DefaultOutboundCost,
	}
	if p.Value1 != nil {
		sp.ReorderPoint = *p.Value1
	}
	if p.Value2 != nil {
		sp.OrderUpTo = *p.Value2
	}
	if p.Value1 == nil || p.Value2 == nil {
		x.diag.Add(WarnMissingPolicyValues, k.String(),
			"inventory policy missing s or S; using s=%g, S=%g", sp.ReorderPoint, sp.OrderUpTo)
	}

	w, ok := warehousing[p.Facility]
	if !ok {
		x.diag.Add(WarnMissingWarehousing, p.Facility,
			"no warehousing row; using inbound=%g outbound=%g stocking=%g",
			DefaultInboundCost, DefaultOutboundCost, DefaultHoldingCost)
	}
	if w.InboundCost != nil {
		sp.InboundCost = *w.InboundCost
	}
	if w.OutboundCost != nil {
		sp.OutboundCost = *w.OutboundCost
	}
	switch {
	case p.HoldingCost != nil:
		sp.HoldingCost = *p.HoldingCost
	case w.StockingCost != nil:
		sp.HoldingCost = *w.StockingCost
	}

	x.policyByKey[k] = len(x.Policies)
	x.Policies = append(x.Policies, sp)
}

func (x *Index) resolveStreams() {
	profiles := make(map[[2]string]CustomerOrderProfile)
	for _, p := range x.Input.CustomerOrderProfiles {
		id := [2]string{p.Customer, p.Product}
		if _, ok := profiles[id]; !ok {
			profiles[id] = p
		}
	}
	for _, cf := range x.Input.CustomerFulfillment {
		subject := cf.Customer + "/" + cf.Product
		s := DemandStream{
			Customer:          cf.Customer,
			Product:           cf.Product,
			Facility:          cf.Facility,
			ServiceWindowDays: DefaultServiceWindowDays,
		}
		p, ok := profiles[[2]string{cf.Customer, cf.Product}]
		if !ok {
			x.diag.Add(WarnMissingOrderProfile, subject,
				"no customer order profile; using demand %s every %s, window %g days",
				DefaultDemand, DefaultInterArrival, DefaultServiceWindowDays)
		}
		s.Demand = x.sampler(p.Demand, DefaultDemand, subject+" demand")
		s.InterArrival = x.sampler(p.InterArrival, DefaultInterArrival, subject+" inter-arrival")
		if p.ServiceWindowDays != nil {
			s.ServiceWindowDays = *p.ServiceWindowDays
		}
		if _, ok := x.policyByKey[s.Key()]; !ok {
			x.diag.Add(WarnUntrackedKey, s.Key().String(),
				"demand-facing key has no inventory policy; orders cannot ship")
		}
		x.Streams = append(x.Streams, s)
	}
}

// sampler parses spec, substituting fallback when spec is empty. A malformed
// spec degrades to the sampler default constant.
func (x *Index) sampler(spec, fallback, subject string) distribution.Sampler {
	if strings.TrimSpace(spec) == "" {
		spec = fallback
	}
	s, err := distribution.ParseOrDefault(spec)
	if err != nil {
		x.diag.Add(WarnMalformedDistribution, subject,
			"%v; using Constant(%g)", err, distribution.DefaultValue)
	}
	return s
}

// normalizeProductionPolicy maps free-form policy names onto the known kinds.
func normalizeProductionPolicy(kind string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(kind))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	switch n {
	case "continuous":
		return PolicyContinuous, true
	case "makebydemand", "mbd", "maketoorder":
		return PolicyMakeByDemand, true
	}
	return "", false
}

func (x *Index) resolveProduction() {
	boms := make(map[string]BOM)
	bomsByProduct := make(map[string]BOM)
	for _, b := range x.Input.BOMs {
		if _, ok := boms[b.ID]; !ok {
			boms[b.ID] = b
		}
		if _, ok := bomsByProduct[b.Product]; b.Product != "" && !ok {
			bomsByProduct[b.Product] = b
		}
	}

	for _, p := range x.Input.Production {
		k := Key{Facility: p.Facility, Product: p.Product}
		if _, ok := x.Production[k]; ok {
			continue
		}
		kind, ok := normalizeProductionPolicy(p.Policy)
		if !ok {
			x.diag.Add(WarnUnknownPolicy, k.String(), "unknown production policy %q; key does not produce", p.Policy)
			continue
		}
		pp := &ProductionPolicy{
			Key:       k,
			Kind:      kind,
			DailyRate: DefaultProductionRate,
			UnitCost:  DefaultProductionUnitCost,
			BOMID:     p.BOM,
		}
		days, known := UnitDays(p.RateUnit)
		if !known {
			x.diag.Add(WarnUnknownTimeUnit, k.String()+" rate", "unknown rate unit %q; treating as DAY", p.RateUnit)
		}
		if p.Rate != nil {
			pp.DailyRate = *p.Rate / days
		} else {
			x.diag.Add(WarnMissingPolicyValues, k.String()+" rate",
				"production rate missing; using %g per day", DefaultProductionRate)
		}
		if p.UnitCost != nil {
			pp.UnitCost = *p.UnitCost
		}

		var (
			encoded string
			found   bool
		)
		if p.BOM != "" {
			if b, ok := boms[p.BOM]; ok {
				encoded, found = b.Materials, true
			} else if strings.Contains(p.BOM, "(") {
				encoded, found = p.BOM, true
			} else {
				x.diag.Add(WarnMissingBOM, k.String(), "BOM %q not found; producing without materials", p.BOM)
			}
		} else if b, ok := bomsByProduct[p.Product]; ok {
			encoded, found = b.Materials, true
			pp.BOMID = b.ID
		}
		if found {
			materials, err := ParseBOM(encoded)
			if err != nil {
				x.diag.Add(WarnMalformedBOM, k.String(), "%v", err)
			}
			if len(materials) > 0 {
				pp.Materials = materials
			}
			for _, m := range materials {
				mk := Key{Facility: p.Facility, Product: m.Name}
				if _, ok := x.policyByKey[mk]; !ok {
					x.diag.Add(WarnUntrackedKey, mk.String(), "BOM material has no inventory policy; 0 available")
				}
			}
		}
		x.Production[k] = pp
	}
}

func (x *Index) resolveSources() {
	lanes := make(map[[2]string]Transportation)
	for _, t := range x.Input.Transportation {
		id := [2]string{t.Origin, t.Destination}
		if _, ok := lanes[id]; !ok {
			lanes[id] = t
		}
	}
	capacities := make(map[string]float64)
	for _, m := range x.Input.TransportationModes {
		if m.VehicleCapacity != nil && *m.VehicleCapacity > 0 {
			if _, ok := capacities[m.Name]; !ok {
				capacities[m.Name] = *m.VehicleCapacity
			}
		}
	}

	for _, r := range x.Input.Replenishment {
		k := Key{Facility: r.Facility, Product: r.Product}
		if _, ok := x.Sources[k]; ok {
			continue
		}
		sp := &SourcePolicy{
			Key:       k,
			Source:    Key{Facility: r.Source, Product: r.Product},
			Surcharge: DefaultReplenishmentCost,
		}
		if r.UnitCost != nil {
			sp.Surcharge = *r.UnitCost
		}
		if _, ok := x.policyByKey[sp.Source]; !ok {
			x.diag.Add(WarnUntrackedKey, sp.Source.String(), "replenishment source has no inventory policy; 0 available")
		}

		t, ok := lanes[[2]string{r.Source, r.Facility}]
		subject := r.Source + "->" + r.Facility
		if !ok {
			x.diag.Add(WarnMissingTransportation, subject,
				"no transportation lane; using unit cost %g, lead time %s", DefaultTransportUnitCost, DefaultLeadTime)
		}
		lane := Lane{
			Origin:      r.Source,
			Destination: r.Facility,
			Mode:        t.Mode,
			UnitCost:    DefaultTransportUnitCost,
			FixedCost:   DefaultTransportFixedCost,
			Distance:    DefaultTransportDistance,
			TimeUnit:    t.TimeUnit,
		}
		if t.UnitCost != nil {
			lane.UnitCost = *t.UnitCost
		}
		if t.FixedCost != nil {
			lane.FixedCost = *t.FixedCost
		}
		if t.Distance != nil {
			lane.Distance = *t.Distance
		}
		lane.LeadTime = x.sampler(t.TimeDistribution, DefaultLeadTime, subject+" lead time")
		if lane.TimeUnit == "" {
			lane.TimeUnit = DefaultTimeUnit
		}
		days, known := UnitDays(lane.TimeUnit)
		if !known {
			x.diag.Add(WarnUnknownTimeUnit, subject, "unknown time unit %q; treating as DAY", lane.TimeUnit)
		}
		lane.LeadTimeUnitDays = days
		lane.VehicleCapacity = DefaultVehicleCapacity
		if c, ok := capacities[t.Mode]; ok {
			lane.VehicleCapacity = c
		} else {
			x.diag.Add(WarnMissingVehicleCapacity, "mode "+t.Mode,
				"no vehicle capacity; using %g", DefaultVehicleCapacity)
		}
		sp.Lane = lane
		x.Sources[k] = sp
	}
}

// Policy returns the resolved stock policy of a tracked key.
func (x *Index) Policy(k Key) (StockPolicy, bool) {
	i, ok := x.policyByKey[k]
	if !ok {
		return StockPolicy{}, false
	}
	return x.Policies[i], true
}

// Fulfillment returns the order-release rule of a facility.
func (x *Index) Fulfillment(facility string) FulfillmentRule {
	if r, ok := x.fulfillment[facility]; ok {
		return r
	}
	return FulfillmentRule{ReviewPeriodDays: DefaultReviewPeriodDays, AllowPartial: DefaultAllowPartial}
}

// FacilityType returns the declared type of a facility, or "" when unknown.
func (x *Index) FacilityType(name string) string {
	return x.facilityTypes[name]
}

// Warnings returns the diagnostics recorded while resolving the input.
func (x *Index) Warnings() []Warning {
	return x.diag.Warnings()
}
