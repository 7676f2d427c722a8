package export

import (
	"fmt"
	"strings"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/history"
	"quizmaker/internal/question"
)

//go:generate templ generate

func quizMeta(quiz Quiz) string {
	return fmt.Sprintf("%d questions, generated %s", quiz.Total, quiz.GeneratedAt.Format("2006-01-02 15:04"))
}

func pageLabel(page, pages int) string {
	return fmt.Sprintf("Page %d of %d", page, pages)
}

func heading(card Card) string {
	return fmt.Sprintf("%d. %s", card.Number, card.Prompt.Question.Meta().Text)
}

func sectionLabel(meta question.Base) string {
	if meta.SectionTitle == "" {
		return meta.Section
	}
	return meta.Section + " " + meta.SectionTitle
}

// inputName groups the radio inputs of one card.
func inputName(card Card) string {
	return fmt.Sprintf("q%d", card.Number)
}

// answerText labels the correct option the way it was offered.
func answerText(prompt evaluate.Prompt) string {
	q := prompt.Question
	for _, c := range prompt.Choices {
		if c.Option == q.Answer() {
			return c.Label + ") " + c.Option
		}
	}
	return q.Answer()
}

func kindSlug(kind question.Kind) string {
	return strings.NewReplacer(" ", "-", "/", "-").Replace(strings.ToLower(string(kind)))
}

func ratio(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}

func filters(s history.SessionRow) string {
	out := "all"
	if s.Section != "" {
		out = "section " + s.Section
	}
	if s.Difficulty != "" {
		out += ", " + s.Difficulty
	}
	if s.Shuffle {
		out += ", shuffled"
	}
	return out
}

// styleTag and scriptTag inline constant assets; no user data reaches them.
func styleTag(extra string) string {
	return "<style>" + pageCSS + extra + "</style>"
}

func scriptTag() string {
	return "<script>" + pageJS + "</script>"
}

const tableCSS = `table{border-collapse:collapse;width:100%;background:#fff}
th,td{padding:6px 10px;border-bottom:1px solid #e3e6eb;text-align:left}`

const pageCSS = `body{font-family:system-ui,sans-serif;background:#f6f7f9;color:#1d2330;margin:0}
main{max-width:760px;margin:0 auto;padding:24px}
.meta,.tags{color:#5b6475;font-size:.9em}
.tags span{margin-right:12px}
.card{background:#fff;border-radius:8px;padding:16px 20px;margin:16px 0;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.card h2{font-size:1.1em}
.card label{display:block;padding:4px 0;cursor:pointer}
.card label input{margin-right:8px}
.card.correct{border-left:4px solid #2e9d5b}
.card.incorrect{border-left:4px solid #d64545}
.feedback{margin-top:8px;color:#384152}
.reference{font-style:italic}
.pager{display:flex;gap:12px;align-items:center;justify-content:center}
footer{text-align:center;margin:24px 0}
#score{font-size:1.2em;font-weight:600}`

const pageJS = `(function(){
var pages=document.querySelectorAll('.page');var current=0;
function show(i){pages.forEach(function(p,n){p.hidden=n!==i;});current=i;
var label=document.getElementById('page-label');if(label){label.textContent='Page '+(i+1)+' of '+pages.length;}}
var prev=document.getElementById('prev'),next=document.getElementById('next');
if(prev){prev.onclick=function(){if(current>0){show(current-1);}};}
if(next){next.onclick=function(){if(current<pages.length-1){show(current+1);}};}
document.querySelectorAll('.reveal').forEach(function(b){b.onclick=function(){
var card=b.closest('.card');card.querySelector('.reference').hidden=false;card.querySelector('.self').hidden=false;b.hidden=true;};});
document.getElementById('check').onclick=function(){
var cards=document.querySelectorAll('.card');var score=0;
cards.forEach(function(card){var picked=card.querySelector('input:checked');
var ok=picked!==null&&picked.dataset.correct==='true';if(ok){score++;}
card.classList.toggle('correct',ok);card.classList.toggle('incorrect',!ok);
card.querySelector('.feedback').hidden=false;});
var pct=cards.length?score/cards.length*100:0;
document.getElementById('score').textContent='Score: '+score+' / '+cards.length+' ('+pct.toFixed(1)+'%)';};
})();`
