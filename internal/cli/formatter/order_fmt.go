package formatter

import (
	"fmt"

	"github.com/alexanderramin/ordersheet/internal/order"
	"github.com/alexanderramin/ordersheet/internal/pricing"
)

// FormatOrder boxes the order text and appends the send instructions.
func FormatOrder(o *order.Order, messageURL string) string {
	box := RenderBox("주문서", o.Text)
	footer := fmt.Sprintf("%s %s\n%s %s",
		Bold("최종 금액"), StyleGreen.Render(order.Won(o.FinalPrice)),
		Dim("주문서를 복사해 아래 채팅방으로 보내주세요:"), StyleBlue.Render(messageURL),
	)
	return box + "\n\n" + footer
}

// FormatQuote renders the one-line live price shown while choosing.
func FormatQuote(q pricing.Quote) string {
	if q.Count == 0 {
		return Dim("예상 금액: -")
	}
	line := fmt.Sprintf("예상 금액: %s (%d개", order.Won(q.Final), q.Count)
	if q.RateBps > 0 {
		line += fmt.Sprintf(", %s%% 할인", pricing.FormatPercent(q.RateBps))
	}
	return StyleYellow.Render(line + ")")
}
