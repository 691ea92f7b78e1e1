package sim

import (
	"math"

	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// produce runs every production policy in tracked-key order.
func (r *Replication) produce(day int) {
	for h := range r.states {
		pp, ok := r.index.Production[r.states[h].Key]
		if !ok {
			continue
		}
		r.produceKey(day, h, pp)
	}
}

// productionTarget is the quantity the policy asks for before material limits.
func (r *Replication) productionTarget(h int, pp *network.ProductionPolicy) float64 {
	st := &r.states[h]
	switch pp.Kind {
	case network.PolicyContinuous:
		return math.Min(pp.DailyRate, math.Max(0, st.OrderUpTo-st.OnHand))
	case network.PolicyMakeByDemand:
		pos := r.position(h)
		if pos > st.ReorderPoint {
			return 0
		}
		return math.Min(math.Max(0, st.OrderUpTo-pos), pp.DailyRate)
	}
	return 0
}

func (r *Replication) produceKey(day, h int, pp *network.ProductionPolicy) {
	st := &r.states[h]
	target := r.productionTarget(h, pp)
	qty := target
	limitedBy := ""

	// materials live at the producing facility
	var materialHandles []int
	if len(pp.Materials) > 0 {
		materialHandles = make([]int, len(pp.Materials))
		for i, m := range pp.Materials {
			avail, mh := r.available(network.Key{Facility: st.Key.Facility, Product: m.Name})
			materialHandles[i] = mh
			buildable := math.Floor(avail / m.QtyPerUnit)
			if buildable < qty {
				qty = buildable
				limitedBy = m.Name
			}
		}
		qty = math.Max(0, qty)
	}

	rec := trace.ProductionRecord{
		Day:       day,
		Facility:  st.Key.Facility,
		Product:   st.Key.Product,
		Policy:    pp.Kind,
		Status:    trace.StatusIdle,
		Target:    target,
		Produced:  qty,
		LimitedBy: limitedBy,
	}
	for i, m := range pp.Materials {
		use := trace.MaterialUse{Material: m.Name}
		if mh := materialHandles[i]; mh >= 0 {
			use.Consumed = qty * m.QtyPerUnit
			r.states[mh].OnHand -= use.Consumed
			use.Remaining = r.states[mh].OnHand
		}
		rec.Materials = append(rec.Materials, use)
	}

	if qty > 0 {
		st.OnHand += qty
		r.costs.Production += qty * pp.UnitCost
		r.produced[st.Key] += qty
		rec.Status = trace.StatusActive
	}
	rec.Inventory = st.OnHand
	r.log.RecordProduction(rec)
}
