package sim

import (
	"math"

	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// arriveDemand places the stream's next order once its arrival day is reached
// and schedules the one after it at least a day later. The order joins the
// queue of its demand point, so queues stay sorted by (OrderDay, ID).
func (r *Replication) arriveDemand(i, day int) {
	s := &r.streams[i]
	if day < s.nextOrderDay {
		return
	}
	qty := math.Max(0, math.Round(s.stream.Demand.Sample(r.demandRNG)))
	r.nextOrderID++
	o := PendingOrder{
		ID:                r.nextOrderID,
		Quantity:          qty,
		Remaining:         qty,
		OrderDay:          day,
		ServiceWindowDays: s.stream.ServiceWindowDays,
	}
	o.logPos = r.log.RecordOrder(trace.OrderRecord{
		Replication: r.cfg.Replication,
		OrderID:     o.ID,
		Customer:    s.stream.Customer,
		Product:     s.stream.Product,
		Facility:    s.stream.Facility,
		OrderDay:    day,
		Quantity:    qty,
	})
	p := &r.points[s.point]
	p.queue = append(p.queue, o)
	r.demanded += qty
	r.orders++

	gap := math.Max(1, math.Round(s.stream.InterArrival.Sample(r.demandRNG)))
	s.nextOrderDay = day + int(gap)
}

// ageOrders adds a day to every order placed before today, so an order's age
// always equals the days elapsed since it was placed. Orders placed today are
// not aged even though they are pending: a same-day delivery waits 0 days.
func (r *Replication) ageOrders(pi, day int) {
	q := r.points[pi].queue
	for j := range q {
		if q[j].OrderDay < day {
			q[j].AgeDays++
		}
	}
}

// fulfillOrders ships from the demand-facing facility in arrival order across
// every customer it serves and drops fully shipped orders. Shipments never
// exceed on-hand stock.
func (r *Replication) fulfillOrders(pi, day int) {
	p := &r.points[pi]
	if len(p.queue) == 0 || p.handle < 0 {
		return
	}
	if day%p.rule.ReviewPeriodDays != 0 {
		return
	}
	st := &r.states[p.handle]
	hd := r.handlingFor(st.Key.Facility, st.policy.InboundCost, st.policy.OutboundCost)

	// once an open order cannot ship, later open orders wait behind it
	blocked := false
	for j := range p.queue {
		o := &p.queue[j]
		if o.Remaining > 0 && !blocked {
			switch {
			case st.OnHand <= 0:
				blocked = true
			case !p.rule.AllowPartial && st.OnHand < o.Remaining:
				blocked = true
			default:
				ship := math.Min(o.Remaining, st.OnHand)
				st.OnHand -= ship
				o.Remaining -= ship
				r.fulfilled += ship
				r.costs.Handling += ship * st.policy.OutboundCost
				hd.OutboundUnits += ship
			}
		}
		if o.Remaining <= 0 {
			onTime := float64(o.AgeDays) <= o.ServiceWindowDays
			if onTime {
				r.onTimeOrders++
			}
			r.log.MarkDelivered(o.logPos, day, o.AgeDays, onTime)
		}
	}

	open := p.queue[:0]
	for _, o := range p.queue {
		if o.Remaining > 0 {
			open = append(open, o)
		}
	}
	p.queue = open
}
