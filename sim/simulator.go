package sim

import (
	"context"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/scenario"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// streamState is the per-replication state of one demand stream.
type streamState struct {
	stream       network.DemandStream
	point        int // index into Replication.points
	nextOrderDay int
}

// demandPoint is a demand-facing facility-product. Every stream it serves
// shares its FIFO queue.
type demandPoint struct {
	handle int // index into Replication.states, -1 when untracked
	rule   network.FulfillmentRule
	queue  []PendingOrder
}

// Replication simulates one scenario over a fixed horizon of days.
// It owns all of its mutable state; the shared Index is only read.
type Replication struct {
	index    *network.Index
	scenario scenario.Scenario
	cfg      ReplicationConfig

	demandRNG *rand.Rand
	leadRNG   *rand.Rand

	states    []FacilityInventoryState
	handles   map[network.Key]int
	streams   []streamState
	points    []demandPoint
	inTransit []PendingReplenishment

	trips     map[tripKey]float64
	tripOrder []tripKey
	tripLanes map[tripKey]network.Lane

	handling      map[string]*HandlingDetail
	handlingOrder []string
	produced      map[network.Key]float64

	costs          CostBreakdown
	demanded       float64
	fulfilled      float64
	orders         int
	onTimeOrders   int
	nextOrderID    int
	nextShipmentID int

	log *trace.SimulationLog
}

// NewReplication prepares a replication of sc. Tracked keys are the index's
// policies in declaration order, with sc's (s,S) assignments applied.
func NewReplication(index *network.Index, sc scenario.Scenario, cfg ReplicationConfig, rng *PartitionedRNG) *Replication {
	r := &Replication{
		index:     index,
		scenario:  sc,
		cfg:       cfg,
		demandRNG: rng.ForSubsystem(SubsystemDemand),
		leadRNG:   rng.ForSubsystem(SubsystemLeadTime),
		handles:   make(map[network.Key]int, len(index.Policies)),
		trips:     make(map[tripKey]float64),
		tripLanes: make(map[tripKey]network.Lane),
		handling:  make(map[string]*HandlingDetail),
		produced:  make(map[network.Key]float64),
		log:       trace.NewSimulationLog(cfg.Log),
	}

	for _, p := range index.Policies {
		r.track(p)
	}
	for _, a := range sc.Assignments {
		h, ok := r.handles[a.Key]
		if !ok {
			h = r.track(network.StockPolicy{
				Key:          a.Key,
				HoldingCost:  network.DefaultHoldingCost,
				InboundCost:  network.DefaultInboundCost,
				OutboundCost: network.DefaultOutboundCost,
			})
		}
		r.states[h].ReorderPoint = a.ReorderPoint
		r.states[h].OrderUpTo = a.OrderUpTo
	}
	for i := range r.states {
		st := &r.states[i]
		if st.policy.InitialInventory != nil {
			st.initial = *st.policy.InitialInventory
		} else {
			st.initial = st.OrderUpTo
		}
		st.OnHand = st.initial
	}

	pointByKey := make(map[network.Key]int)
	for _, s := range index.Streams {
		pi, ok := pointByKey[s.Key()]
		if !ok {
			h, tracked := r.handles[s.Key()]
			if !tracked {
				h = -1
			}
			pi = len(r.points)
			pointByKey[s.Key()] = pi
			r.points = append(r.points, demandPoint{
				handle: h,
				rule:   index.Fulfillment(s.Facility),
			})
		}
		r.streams = append(r.streams, streamState{stream: s, point: pi})
	}
	return r
}

// track adds a state for p and returns its handle.
func (r *Replication) track(p network.StockPolicy) int {
	h := len(r.states)
	r.states = append(r.states, FacilityInventoryState{
		Key:          p.Key,
		ReorderPoint: p.ReorderPoint,
		OrderUpTo:    p.OrderUpTo,
		policy:       p,
	})
	r.handles[p.Key] = h
	return h
}

// Run simulates every day of the horizon. The only error is ctx's.
func (r *Replication) Run(ctx context.Context) (*ReplicationResult, error) {
	horizon := r.cfg.horizon()
	logrus.Debugf("[scenario %d rep %d] simulating %d days over %d keys",
		r.scenario.ID, r.cfg.Replication, horizon, len(r.states))
	for day := 0; day < horizon; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.step(day)
	}
	return r.result(horizon), nil
}

// step advances one day. The order matters: later phases observe the
// inventory mutations of earlier ones.
func (r *Replication) step(day int) {
	for i := range r.streams {
		r.arriveDemand(i, day)
	}
	for pi := range r.points {
		r.ageOrders(pi, day)
	}
	for pi := range r.points {
		r.fulfillOrders(pi, day)
	}
	r.accrueHolding()
	r.receiveShipments(day)
	r.produce(day)
	r.reorder(day)
	r.endOfDay(day)
}

func (r *Replication) accrueHolding() {
	for i := range r.states {
		st := &r.states[i]
		r.costs.Inventory += st.policy.HoldingCost * st.OnHand
	}
}

// endOfDay accumulates the average-inventory sums and takes snapshots.
func (r *Replication) endOfDay(day int) {
	for i := range r.states {
		st := &r.states[i]
		st.inventorySum += st.OnHand
		if r.cfg.Log.Snapshots {
			r.log.RecordSnapshot(trace.InventorySnapshot{
				Replication: r.cfg.Replication,
				Day:         day,
				Facility:    st.Key.Facility,
				Product:     st.Key.Product,
				OnHand:      st.OnHand,
				Position:    r.position(i),
			})
		}
	}
}

// position is on-hand plus everything in transit toward the key.
func (r *Replication) position(h int) float64 {
	pos := r.states[h].OnHand
	for _, p := range r.inTransit {
		if p.dest == h {
			pos += p.Quantity
		}
	}
	return pos
}

// available returns the on-hand stock of k, or 0 when k is not tracked.
func (r *Replication) available(k network.Key) (float64, int) {
	h, ok := r.handles[k]
	if !ok {
		return 0, -1
	}
	return r.states[h].OnHand, h
}

func (r *Replication) handlingFor(facility string, inbound, outbound float64) *HandlingDetail {
	hd, ok := r.handling[facility]
	if !ok {
		hd = &HandlingDetail{Facility: facility, InboundCost: inbound, OutboundCost: outbound}
		r.handling[facility] = hd
		r.handlingOrder = append(r.handlingOrder, facility)
	}
	return hd
}

func (r *Replication) result(horizon int) *ReplicationResult {
	res := &ReplicationResult{
		Replication:    r.cfg.Replication,
		Costs:          r.costs,
		TotalCost:      r.costs.Total(),
		DemandedUnits:  r.demanded,
		FulfilledUnits: r.fulfilled,
		Orders:         r.orders,
		OnTimeOrders:   r.onTimeOrders,
	}
	if r.demanded > 0 {
		res.FillRate = r.fulfilled / r.demanded * 100
	}
	if r.orders > 0 {
		res.ServiceLevel = float64(r.onTimeOrders) / float64(r.orders) * 100
	}

	for _, k := range r.tripOrder {
		lane := r.tripLanes[k]
		qty := r.trips[k]
		tr := trace.TripRecord{
			Origin:          k.origin,
			Destination:     k.destination,
			Mode:            k.mode,
			Quantity:        qty,
			VehicleCapacity: lane.VehicleCapacity,
			Trips:           int(math.Ceil(qty / lane.VehicleCapacity)),
		}
		res.Trips = append(res.Trips, tr)
		r.log.RecordTrip(tr)
	}

	res.Details = r.details(horizon)
	if r.cfg.Log.Enabled() {
		res.Log = r.log
	}
	return res
}

func (r *Replication) details(horizon int) Details {
	var d Details
	for i := range r.states {
		st := &r.states[i]
		d.Inventory = append(d.Inventory, InventoryDetail{
			Facility:         st.Key.Facility,
			Product:          st.Key.Product,
			ReorderPoint:     st.ReorderPoint,
			OrderUpTo:        st.OrderUpTo,
			InitialInventory: st.initial,
			HoldingCost:      st.policy.HoldingCost,
			AverageInventory: st.inventorySum / float64(horizon),
			FinalInventory:   st.OnHand,
		})
		if pp, ok := r.index.Production[st.Key]; ok {
			d.Production = append(d.Production, ProductionDetail{
				Facility:  st.Key.Facility,
				Product:   st.Key.Product,
				Policy:    pp.Kind,
				DailyRate: pp.DailyRate,
				UnitCost:  pp.UnitCost,
				BOMID:     pp.BOMID,
				Materials: pp.Materials,
				Produced:  r.produced[st.Key],
			})
		}
		if sp, ok := r.index.Sources[st.Key]; ok {
			d.Transportation = append(d.Transportation, TransportationDetail{
				Origin:          sp.Lane.Origin,
				Destination:     sp.Lane.Destination,
				Product:         st.Key.Product,
				Mode:            sp.Lane.Mode,
				UnitCost:        sp.Lane.UnitCost,
				FixedCost:       sp.Lane.FixedCost,
				Surcharge:       sp.Surcharge,
				Distance:        sp.Lane.Distance,
				LeadTime:        sp.Lane.LeadTime.String(),
				TimeUnit:        sp.Lane.TimeUnit,
				VehicleCapacity: sp.Lane.VehicleCapacity,
			})
		}
	}
	for _, f := range r.handlingOrder {
		d.Handling = append(d.Handling, *r.handling[f])
	}
	return d
}
