package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetResourceID parses the numeric :id path parameter.
func GetResourceID(ctx *gin.Context) (uint, error) {
	idStr := ctx.Param("id")

	if idStr == "" {
		return 0, errors.New("resource ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("invalid resource ID")
	}

	return uint(id), nil
}

// ParseIDList parses a comma-separated list of integer ids, as used by
// the tags and ingredients filter parameters. Every token must parse;
// an empty string yields nil.
func ParseIDList(value string) ([]uint, error) {
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, errors.New("filter values must be comma separated integer IDs")
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}

// ParseAssignedOnly parses the assigned_only query parameter. Absent
// means false; anything that is not an integer is rejected.
func ParseAssignedOnly(value string) (bool, error) {
	if value == "" {
		return false, nil
	}

	n, err := strconv.Atoi(value)

	if err != nil {
		return false, errors.New("assigned_only must be 0 or 1")
	}

	return n != 0, nil
}
