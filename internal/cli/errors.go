package cli

import "errors"

var ErrDoctorIssuesFound = errors.New("doctor found errors")
