package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type DeviceID = uuid.UUID
type FootprintID = uuid.UUID
