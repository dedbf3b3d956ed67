package content

const timestampsPrompt = `You are a YouTube video editor. Analyze the following transcript and generate timestamps in a copy-pastable format for the YouTube video description.

Format each timestamp as:
HH:MM:SS - Brief description of the topic

Make sure the timestamps are:
- Accurate and helpful for viewers
- Cover all major topics and transitions
- Use proper time format (HH:MM:SS or MM:SS)
- Include clear, concise descriptions

Transcript:
%s

Generate the timestamps now:`

const summaryPrompt = `You are a marketing expert. Analyze the following video transcript and create a compelling summary that would be useful for marketing activities.

The summary should:
- Highlight key value propositions and takeaways
- Emphasize benefits and outcomes for the audience
- Be engaging and persuasive
- Focus on what makes this content valuable and shareable
- Be suitable for social media posts, email campaigns, and promotional materials

Transcript:
%s

Generate the marketing summary now:`

const titlesPrompt = `You are a YouTube SEO expert. Based on the following marketing summary and target audience guidelines, generate 5 SEO-optimized YouTube video titles.

Target Audience & Tone Guidelines:
%s

Marketing Summary:
%s

Requirements for titles:
- Must be SEO-optimized with relevant keywords
- Should be compelling and click-worthy
- Follow YouTube best practices (typically 60-70 characters)
- Match the specified tone of voice and target audience
- Each title should offer a unique angle or hook

Generate 5 YouTube titles now:`

const thumbnailsPrompt = `You are a YouTube thumbnail designer. Based on the following marketing summary, generate 5 creative thumbnail concepts that would attract clicks and views.

Marketing Summary:
%s

For each thumbnail concept, describe:
- Main visual element or focal point
- Text overlay (if any) - keep it short and impactful
- Color scheme and mood
- Composition and layout
- Why this concept would perform well

Generate 5 thumbnail concepts now:`

const showNotesPrompt = `You are a content strategist specializing in YouTube SEO. Based on the following transcript and target audience guidelines, create comprehensive show notes that will resonate with the target audience and rank well in search.

Target Audience Guidelines:
%s

Transcript:
%s

The show notes should include:
- A compelling overview/introduction
- Key topics covered with timestamps references
- Important links, resources, or references mentioned
- Relevant keywords naturally integrated
- Call-to-action for engagement
- Be well-formatted and easy to read
- Optimized for YouTube's description field and search algorithms

Generate the show notes now:`
