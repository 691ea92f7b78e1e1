package sim

import (
	"math"

	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// receiveShipments books every shipment due today (or earlier) into its
// destination and charges inbound handling.
func (r *Replication) receiveShipments(day int) {
	if len(r.inTransit) == 0 {
		return
	}
	remaining := r.inTransit[:0]
	for _, p := range r.inTransit {
		if p.ArrivalDay > day {
			remaining = append(remaining, p)
			continue
		}
		st := &r.states[p.dest]
		st.OnHand += p.Quantity
		r.costs.Handling += p.Quantity * st.policy.InboundCost
		hd := r.handlingFor(st.Key.Facility, st.policy.InboundCost, st.policy.OutboundCost)
		hd.InboundUnits += p.Quantity
	}
	r.inTransit = remaining
}

// reorder applies the (s,S) rule to every key with a replenishment source.
// Shipments are limited by the source's real on-hand stock, which is
// deducted at order time.
func (r *Replication) reorder(day int) {
	for h := range r.states {
		st := &r.states[h]
		sp, ok := r.index.Sources[st.Key]
		if !ok {
			continue
		}
		pos := r.position(h)
		if pos > st.ReorderPoint {
			continue
		}
		need := st.OrderUpTo - pos
		srcAvail, src := r.available(sp.Source)
		qty := math.Min(need, srcAvail)
		if qty <= 0 || src < 0 {
			continue
		}
		r.states[src].OnHand -= qty

		lane := sp.Lane
		cost := lane.UnitCost*qty + lane.FixedCost + sp.Surcharge*qty
		r.costs.Transportation += cost

		lead := math.Max(0, math.Round(lane.LeadTime.Sample(r.leadRNG)*lane.LeadTimeUnitDays))
		r.nextShipmentID++
		p := PendingReplenishment{
			ID:          r.nextShipmentID,
			Quantity:    qty,
			ArrivalDay:  day + int(lead),
			OrderDay:    day,
			Source:      sp.Source,
			Destination: st.Key,
			dest:        h,
		}
		r.inTransit = append(r.inTransit, p)

		r.log.RecordFlow(trace.FlowRecord{
			ShipmentID:  p.ID,
			Day:         day,
			ArrivalDay:  p.ArrivalDay,
			Origin:      sp.Source.Facility,
			Destination: st.Key.Facility,
			Product:     st.Key.Product,
			Mode:        lane.Mode,
			Quantity:    qty,
			Requested:   need,
			Cost:        cost,
		})

		tk := tripKey{origin: lane.Origin, destination: lane.Destination, mode: lane.Mode}
		if _, seen := r.trips[tk]; !seen {
			r.tripOrder = append(r.tripOrder, tk)
			r.tripLanes[tk] = lane
		}
		r.trips[tk] += qty
	}
}
