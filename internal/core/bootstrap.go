package core

import "mover-service/internal/types"

// bootstrap resolves this vehicle's identity, seeds the goal with a hold at
// the initial position and initializes the avoider. A failed identity
// request is not retried.
func (m *Mover) bootstrap() error {
	var id types.Identity

	if m.cfg.Testing {
		id = types.Identity{PlaneID: m.cfg.TestPlaneID}
		m.logger.Infof("Testing mode: using plane ID %d without identity request", id.PlaneID)
	} else {
		var err error
		id, err = m.redis.RequestIdentity(m.cfg.IdentityTimeout)
		if err != nil {
			m.logger.Errorf("Unsuccessful plane ID request: %v", err)
			return err
		}
		m.logger.Infof("Got plane ID %d", id.PlaneID)
		m.logger.Infof("Got initial position lat: %f|long: %f|alt: %f",
			id.InitialLatitude, id.InitialLongitude, id.InitialAltitude)
	}

	m.planeID = id.PlaneID
	m.store.SetGoal(id.HoldCommand())
	m.avoider.Init(id.PlaneID)

	if err := m.redis.PublishPlaneID(id.PlaneID); err != nil {
		m.logger.Warnf("Failed to publish plane ID: %v", err)
	}
	return nil
}
