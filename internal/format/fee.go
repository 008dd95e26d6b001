package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FeeToPercentString renders a fee expressed in millionths as a
// percent string with up to four fractional digits. Trailing zeros
// and a bare decimal point are stripped, so 3000 becomes "0.3%" and
// 10000 becomes "1%". Values above 1_000_000 render percentages
// above 100%.
func FeeToPercentString(fee uint32) string {
	whole := fee / 10_000
	frac := fee % 10_000
	if frac == 0 {
		return strconv.FormatUint(uint64(whole), 10) + "%"
	}
	tail := strings.TrimRight(fmt.Sprintf("%04d", frac), "0")
	return fmt.Sprintf("%d.%s%%", whole, tail)
}
