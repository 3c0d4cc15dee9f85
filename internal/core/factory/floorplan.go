package factory

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"listing-service/internal/core/domain"
)

var layoutRe = regexp.MustCompile(`^(\d+)(R|K|DK|LDK|SLDK)$`)

// roundHalfJo переводит м² в 帖 с шагом 0.5, не меньше 3.
func roundHalfJo(m2 float64) float64 {
	return math.Max(minRoomJo, roundHalfUp(m2/sqmPerJo*2)/2)
}

// roundHalfUp округляет .5 вверх.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joSize(m2 float64) string {
	return formatNumber(roundHalfJo(m2)) + "帖"
}

func livingRatio(roomType string, n int) float64 {
	switch roomType {
	case "R":
		return 1.0
	case "K":
		return 0.15
	case "DK":
		return 0.30
	}
	if n == 1 {
		return 0.55
	}
	return 0.45
}

// BuildFloorplan строит планировку по строке вида "2LDK" и площади.
func BuildFloorplan(layout string, area float64, propertyType string) domain.Floorplan {
	usable := area * usableAreaRatio
	var rooms []domain.Room

	m := layoutRe.FindStringSubmatch(layout)
	if m == nil {
		rooms = append(rooms,
			domain.Room{Type: "ldk", Name: "LDK", Size: joSize(usable * 0.6)},
			domain.Room{Type: "bed", Name: "洋室", Size: joSize(usable * 0.4)},
		)
	} else {
		n, _ := strconv.Atoi(m[1])
		roomType := m[2]
		isSLDK := roomType == "SLDK"

		livingM2 := usable * livingRatio(roomType, n)
		divider := n
		if isSLDK {
			divider = n + 1
		}
		if divider < 1 {
			divider = 1
		}

		if roomType == "R" {
			rooms = append(rooms, domain.Room{Type: "ldk", Name: "居室", Size: joSize(livingM2)})
		} else {
			bedM2 := (usable - livingM2) / float64(divider)
			ldkName := roomType
			if isSLDK {
				ldkName = "LDK"
			}
			rooms = append(rooms, domain.Room{Type: "ldk", Name: ldkName, Size: joSize(livingM2)})
			for i := 0; i < n; i++ {
				rooms = append(rooms, domain.Room{Type: "bed", Name: "洋室", Size: joSize(bedM2)})
			}
			if isSLDK {
				rooms = append(rooms, domain.Room{Type: "service", Name: "S（納戸）", Size: joSize(bedM2 * 0.7)})
			}
		}
	}

	rooms = append(rooms,
		domain.Room{Type: "bath", Name: "浴室"},
		domain.Room{Type: "wc", Name: "WC"},
		domain.Room{Type: "entrance", Name: "玄関"},
	)
	if propertyType == houseType {
		rooms = append(rooms, domain.Room{Type: "garden", Name: "庭"})
	} else {
		rooms = append(rooms, domain.Room{Type: "balcony", Name: "バルコニー"})
	}

	return domain.Floorplan{
		Label: fmt.Sprintf("%s ／ %s㎡", layout, formatNumber(area)),
		Rooms: rooms,
	}
}
