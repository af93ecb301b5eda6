package repository

import "github.com/BruksfildServices01/nail-studio/internal/httperr"

// errSlotTaken espelha, no store em memória, o índice único parcial de
// horários do Postgres.
var errSlotTaken = httperr.ErrBusiness(httperr.CodeTimeConflict)
