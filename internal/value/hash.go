package value

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/big"

	"github.com/mwildehahn/monty/internal/bigint"
	"github.com/mwildehahn/monty/internal/datetime"
)

// Hash computes the hash of v, consistent with Equal: for any a, b with
// Equal(a, b) == true, Hash(a) == Hash(b). Mutable containers are not
// hashable and return an error, matching §3.1's invariant.
func Hash(v Value) (int64, error) {
	switch vv := v.(type) {
	case noneValue:
		return 0, nil
	case ellipsisValue:
		return 1, nil
	case *Bool:
		if vv.Value {
			return 1, nil
		}
		return 0, nil
	case *Int:
		return vv.Value.Hash(), nil
	case *Float:
		return hashFloat(vv.Value), nil
	case *Str:
		return hashBytes([]byte(string(vv.Runes))), nil
	case *Bytes:
		return hashBytes(vv.Value), nil
	case *Tuple:
		h := int64(0x345678)
		for _, e := range vv.Elements {
			eh, err := Hash(e)
			if err != nil {
				return 0, err
			}
			h = combineHash(h, eh)
		}
		return h, nil
	case *FrozenSet:
		// Set hash must be order-independent: XOR every element hash.
		var h int64
		for _, e := range vv.Elements {
			eh, err := Hash(e)
			if err != nil {
				return 0, err
			}
			h ^= eh
		}
		return h, nil
	case *Range:
		return hashBytes([]byte(fmt.Sprintf("range(%d,%d,%d)", vv.Start, vv.Stop, vv.Step))), nil
	case *BuiltinFunction:
		return hashBytes([]byte("builtin:" + vv.Name)), nil
	case *Type:
		return hashBytes([]byte("type:" + vv.Name)), nil
	case *Date:
		return hashBytes([]byte(fmt.Sprintf("date(%d,%d,%d)", vv.V.Year, vv.V.Month, vv.V.Day))), nil
	case *Time:
		return hashBytes([]byte(fmt.Sprintf("time(%d,%d,%d,%d)", vv.V.Hour, vv.V.Minute, vv.V.Second, vv.V.Microsecond))), nil
	case *DateTime:
		if vv.V.Aware() {
			// Equal compares aware datetimes by instant, so hash the instant.
			td, _ := vv.V.Sub(datetime.DateTime{D: datetime.Date{Year: 1, Month: 1, Day: 1}, TZ: &datetime.UTC})
			return hashBytes([]byte(fmt.Sprintf("datetime(%d,%d,%d)", td.Days, td.Seconds, td.Microseconds))), nil
		}
		return hashBytes([]byte(vv.V.Repr())), nil
	case *TimeDelta:
		return hashBytes([]byte(fmt.Sprintf("timedelta(%d,%d,%d)", vv.V.Days, vv.V.Seconds, vv.V.Microseconds))), nil
	case *TimeZone:
		return hashBytes([]byte(fmt.Sprintf("timezone(%d)", vv.V.OffsetSeconds))), nil
	default:
		return 0, fmt.Errorf("unhashable type: %q", v.TypeName())
	}
}

// hashFloat matches hash(int) for any float with an exact integer value
// (so hash(2.0) == hash(2)), and otherwise hashes the bit pattern.
func hashFloat(f float64) int64 {
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		// Route through the integer hash so 2.0 and 2 collide as required.
		fi, _ := new(big.Float).SetFloat64(f).Int(nil)
		return bigint.FromBigInt(fi).Hash()
	}
	bits := math.Float64bits(f)
	return int64(bits % uint64(mersenne61))
}

const mersenne61 = (int64(1) << 61) - 1

func combineHash(a, b int64) int64 {
	// Simple order-sensitive mix, adequate for tuple hashing.
	return (a*1000003 + b) & 0x7fffffffffffffff
}

func hashBytes(b []byte) int64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return int64(h.Sum64() & 0x7fffffffffffffff)
}
